package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imsachin001/chronosync/internal/app"
	mcpinternal "github.com/imsachin001/chronosync/internal/mcp"
	"github.com/imsachin001/chronosync/pkg/config"
	"github.com/imsachin001/chronosync/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:   cfg.EffectiveLogLevel(),
		Format:  cfg.LogFormat,
		Output:  os.Stdout,
		Service: "chronosync-mcp",
	})

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := mcpinternal.Serve(ctx, cfg, mcpinternal.NewCLIApp(container), logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
