package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/adapter/cli"
	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

type taskCreateInput struct {
	Title       string `json:"title" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category" jsonschema:"required"`
	DueDate     string `json:"due_date" jsonschema:"required"`
	DueTime     string `json:"due_time" jsonschema:"required"`
}

type taskListInput struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

func (in taskIDInput) id() (uuid.UUID, error) {
	if in.TaskID == "" {
		return uuid.Nil, errors.New("task_id is required")
	}
	id, err := uuid.Parse(in.TaskID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("task_id: %w", err)
	}
	return id, nil
}

type taskToggleOutput struct {
	Task             queries.TaskDTO        `json:"task"`
	NewlyEarnedBadge *analytics.EarnedBadge `json:"newly_earned_badge,omitempty"`
}

func registerTaskTools(srv *mcp.Server, app *cli.App) {
	srv.Tool("task.create").
		Description("Create a task. due_date is YYYY-MM-DD and due_time is HH:MM in the configured time zone").
		Handler(createTask(app))

	srv.Tool("task.toggle").
		Description("Flip a task between open and completed. Returns any badge the completion earned").
		Handler(toggleTask(app))

	srv.Tool("task.list").
		Description("List tasks sorted by due date. status is all, pending, completed or overdue").
		Handler(listTasks(app))

	srv.Tool("task.delete").
		Description("Delete a task. Completed work stays in the statistics").
		Handler(deleteTask(app))
}

func createTask(app *cli.App) func(context.Context, taskCreateInput) (*queries.TaskDTO, error) {
	return func(ctx context.Context, input taskCreateInput) (*queries.TaskDTO, error) {
		if app == nil || app.CreateTaskHandler == nil {
			return nil, errors.New("task creation requires database connection")
		}
		due, err := task.ParseDue(input.DueDate, input.DueTime, app.Location)
		if err != nil {
			return nil, err
		}
		result, err := app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
			UserID:      app.CurrentUserID,
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			DueDate:     due,
		})
		if err != nil {
			return nil, err
		}
		dto := queries.ToDTO(result.Task)
		return &dto, nil
	}
}

func toggleTask(app *cli.App) func(context.Context, taskIDInput) (*taskToggleOutput, error) {
	return func(ctx context.Context, input taskIDInput) (*taskToggleOutput, error) {
		if app == nil || app.ToggleTaskHandler == nil {
			return nil, errors.New("task toggle requires database connection")
		}
		taskID, err := input.id()
		if err != nil {
			return nil, err
		}
		result, err := app.ToggleTaskHandler.Handle(ctx, commands.ToggleTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return nil, err
		}
		return &taskToggleOutput{Task: queries.ToDTO(result.Task), NewlyEarnedBadge: result.NewlyEarnedBadge}, nil
	}
}

func listTasks(app *cli.App) func(context.Context, taskListInput) ([]queries.TaskDTO, error) {
	return func(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
		if app == nil || app.ListTasksHandler == nil {
			return nil, errors.New("task listing requires database connection")
		}
		return app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
			UserID:   app.CurrentUserID,
			Status:   input.Status,
			Category: input.Category,
		})
	}
}

func deleteTask(app *cli.App) func(context.Context, taskIDInput) (map[string]any, error) {
	return func(ctx context.Context, input taskIDInput) (map[string]any, error) {
		if app == nil || app.DeleteTaskHandler == nil {
			return nil, errors.New("task deletion requires database connection")
		}
		taskID, err := input.id()
		if err != nil {
			return nil, err
		}
		if err := app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}); err != nil {
			return nil, err
		}
		return map[string]any{"task_id": taskID, "deleted": true}, nil
	}
}
