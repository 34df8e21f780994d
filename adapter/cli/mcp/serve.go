package mcp

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
	mcpinternal "github.com/imsachin001/chronosync/internal/mcp"
	"github.com/imsachin001/chronosync/pkg/config"
)

var (
	serveAddr  string
	loadConfig = config.Load
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server over HTTP.

Tools, resources and prompts act as the configured user. Set MCP_AUTH_TOKEN
to require a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not initialized - database connection required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		err = mcpinternal.Serve(cmd.Context(), cfg, app, cli.Logger())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to MCP_ADDR)")
}
