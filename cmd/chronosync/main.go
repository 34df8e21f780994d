package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imsachin001/chronosync/adapter/cli"
	"github.com/imsachin001/chronosync/adapter/cli/analytics"
	"github.com/imsachin001/chronosync/adapter/cli/maintenance"
	"github.com/imsachin001/chronosync/adapter/cli/mcp"
	"github.com/imsachin001/chronosync/adapter/cli/task"
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
		Service: "chronosync",
	})
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(mcpinternal.NewCLIApp(container))

	cli.AddCommand(task.Cmd)
	cli.AddCommand(analytics.Cmd)
	cli.AddCommand(maintenance.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}
