package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
)

// RegisterResources registers read-only JSON resources for tasks and analytics.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("chronosync://tasks").
		Name("Tasks").
		Description("All tasks for the current user, sorted by due date").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListTasksHandler == nil {
				return nil, fmt.Errorf("task listing requires database connection")
			}
			tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{UserID: app.CurrentUserID})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("chronosync://tasks/overdue").
		Name("Overdue tasks").
		Description("Open tasks whose due date has passed").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListTasksHandler == nil {
				return nil, fmt.Errorf("task listing requires database connection")
			}
			tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{UserID: app.CurrentUserID, Status: "overdue"})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("chronosync://analytics/dashboard").
		Name("Analytics dashboard").
		Description("Statistics, productivity, streak, categories, insights and badges").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if err := ready(app); err != nil {
				return nil, err
			}
			return jsonResource(uri, app.Analytics.Dashboard(ctx, app.CurrentUserID))
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
