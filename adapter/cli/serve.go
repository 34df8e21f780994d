package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task and analytics HTTP API",
	Long: `Start the HTTP API under /api/v1.

Requests act as the configured user unless they carry an X-User-ID header.

Examples:
  chronosync serve
  chronosync serve --addr 127.0.0.1:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Analytics == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		cfg := app.ServerConfig
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		cfg.DefaultUser = app.CurrentUserID

		server := api.NewServer(cfg,
			api.NewTaskHandler(api.TaskHandlerConfig{
				Create:   app.CreateTaskHandler,
				Toggle:   app.ToggleTaskHandler,
				Delete:   app.DeleteTaskHandler,
				List:     app.ListTasksHandler,
				Location: app.Location,
				Logger:   logger,
			}),
			api.NewAnalyticsHandler(app.Analytics, logger),
			logger,
		)

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
