package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/imsachin001/chronosync/adapter/cli"
)

// ToolDependencies carries what the tool handlers act on.
type ToolDependencies struct {
	App *cli.App
}

var toolGroups = []func(*mcp.Server, *cli.App){
	registerTaskTools,
	registerAnalyticsTools,
}

// RegisterTools registers the task.* and analytics.* tools. Every tool acts
// as App.CurrentUserID.
func RegisterTools(srv *mcp.Server, deps ToolDependencies) error {
	switch {
	case srv == nil:
		return errors.New("server is required")
	case deps.App == nil:
		return errors.New("cli app is required")
	}
	for _, register := range toolGroups {
		register(srv, deps.App)
	}
	return nil
}
