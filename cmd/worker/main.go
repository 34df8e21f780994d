package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
	"github.com/imsachin001/chronosync/pkg/config"
	"github.com/imsachin001/chronosync/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger(observability.LogConfig{}).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:   cfg.EffectiveLogLevel(),
		Format:  cfg.LogFormat,
		Output:  os.Stdout,
		Service: "chronosync-worker",
	})
	logger.Info("starting chronosync worker")

	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required; without it events are handled in process")
		os.Exit(1)
	}

	consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:      cfg.RabbitMQURL,
		Queue:    cfg.WorkerQueue,
		Exchange: cfg.EventsExchange,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	var badgesSeen atomic.Int64
	notifier := analyticsApp.NewBadgeNotifier(logger, func(context.Context, domain.BadgeEarned) {
		badgesSeen.Add(1)
	})
	if err := consumer.Subscribe(notifier); err != nil {
		logger.Error("failed to subscribe badge notifier", "error", err)
		os.Exit(1)
	}

	var running atomic.Bool
	if cfg.WorkerHealthAddr != "" {
		r := chi.NewRouter()
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":      "ok",
				"running":     running.Load(),
				"badges_seen": badgesSeen.Load(),
			})
		})

		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	running.Store(true)
	err = consumer.Start(ctx)
	running.Store(false)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
