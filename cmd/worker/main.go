package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"

	"github.com/marcelsud/approval-relay/config"
	"github.com/marcelsud/approval-relay/delivery"
	"github.com/marcelsud/approval-relay/errlog"
	"github.com/marcelsud/approval-relay/metrics"
	redisqueue "github.com/marcelsud/approval-relay/queue/redis"
	"github.com/marcelsud/approval-relay/webhooklog/postgres"
)

/* The worker binary consumes delivery jobs from the queue, performs the
 * webhook POSTs and writes the audit log. It exposes only a metrics and
 * health surface; the host never talks to it directly
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := httplog.NewLogger("approval-relay-worker", httplog.Options{
		JSON: true,
	})
	processLog := errlog.New(logger)

	repo, err := postgres.NewRepository(cfg.DatabaseURL)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)
	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Println(err)
		return
	}

	recorder, err := metrics.NewRecorder()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer recorder.Shutdown(context.Background())

	queue, err := redisqueue.NewQueue(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer queue.Close(ctx)

	worker := delivery.NewWorker(repo, processLog)
	worker.Metrics = recorder

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.MetricsPort,
		Handler:      mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			processLog.Error("metrics server failed", err)
		}
	}()

	fmt.Printf("Consuming delivery jobs (metrics on port %s)\n", cfg.MetricsPort)
	err = queue.Run(ctx, worker, processLog)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println(err)
	}

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxTimeout); err != nil {
		fmt.Println(err)
	}
}
