package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"

	"github.com/marcelsud/approval-relay/config"
	"github.com/marcelsud/approval-relay/errlog"
	"github.com/marcelsud/approval-relay/hooks"
	"github.com/marcelsud/approval-relay/internal/http/chi"
	redisqueue "github.com/marcelsud/approval-relay/queue/redis"
	"github.com/marcelsud/approval-relay/settings"
	"github.com/marcelsud/approval-relay/trigger"
)

const TIMEOUT = 30 * time.Second

/* The api binary is the host-facing half of the connector: it receives
 * document lifecycle events, runs the change detector synchronously and
 * enqueues delivery jobs. Delivery itself happens in the worker binary
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

	logger := httplog.NewLogger("approval-relay-api", httplog.Options{
		JSON: true,
	})
	processLog := errlog.New(logger)

	queue, err := redisqueue.NewQueue(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer queue.Close(ctx)

	hookLoader := hooks.Default()
	if cfg.HooksFile != "" {
		hookLoader, err = hooks.LoadFile(cfg.HooksFile)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	src := settings.NewStaticSource(settings.New(cfg.WebhooksEnabled, cfg.WebhookURL, cfg.WebhookSecret))
	detector := trigger.NewService(hookLoader, src, queue, processLog)

	r := chi.Handlers(ctx, detector)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	default:
		errShutdown <- fmt.Errorf("forcing closing the server")
	}
}
