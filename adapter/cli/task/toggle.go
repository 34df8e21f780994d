package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [task-id]",
	Short: "Flip a task between open and completed",
	Long: `Toggle a task's completion state by its ID.

Completing a task updates your streak and may unlock a badge.

Examples:
  chronosync task toggle 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ToggleTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		result, err := app.ToggleTaskHandler.Handle(cmd.Context(), commands.ToggleTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		out := cmd.OutOrStdout()
		if result.Task.IsCompleted() {
			cli.PrintSuccess(out, "Task completed: %s", result.Task.Title())
		} else {
			fmt.Fprintf(out, "Task reopened: %s\n", result.Task.Title())
		}
		cli.PrintBadge(out, result.NewlyEarnedBadge)
		return nil
	},
}
