package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"github.com/marcelsud/approval-relay/trigger"
)

// Handlers sets up the inbound hook API routes
func Handlers(ctx context.Context, detector trigger.UseCase) *chi.Mux {
	logger := httplog.NewLogger("approval-relay", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Hook API routes
	r.Route("/v1", func(r chi.Router) {
		// Document lifecycle events from the host
		r.Post("/hooks/events", postHookEvent(detector).ServeHTTP)
	})

	return r
}
