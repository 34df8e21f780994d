package mcp

import (
	"github.com/imsachin001/chronosync/adapter/api"
	"github.com/imsachin001/chronosync/adapter/cli"
	"github.com/imsachin001/chronosync/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.ToggleTaskHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.Analytics,
		container.Location,
	)
	cliApp.SetCurrentUserID(container.UserID)

	if cfg := container.Config; cfg != nil {
		serverCfg := api.DefaultServerConfig()
		if cfg.HTTPAddr != "" {
			serverCfg.Addr = cfg.HTTPAddr
		}
		if cfg.HTTPReadTimeout > 0 {
			serverCfg.ReadTimeout = cfg.HTTPReadTimeout
		}
		if cfg.HTTPWriteTimeout > 0 {
			serverCfg.WriteTimeout = cfg.HTTPWriteTimeout
		}
		if cfg.HTTPIdleTimeout > 0 {
			serverCfg.IdleTimeout = cfg.HTTPIdleTimeout
		}
		cliApp.SetServerConfig(serverCfg)
	}

	return cliApp
}
