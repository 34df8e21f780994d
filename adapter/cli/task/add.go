package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

var (
	description string
	category    string
	dueDate     string
	dueTime     string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a task with a category and a due date.

Due dates are entered in the configured time zone (CHRONOSYNC_TIMEZONE).

Examples:
  chronosync task add "Write report" --category Work --date 2024-06-14 --time 17:00
  chronosync task add "Read chapter 3" -c Study -d 2024-06-15 -t 09:30 --description "Pages 40-72"`,
	Aliases: []string{"create"},
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		due, err := task.ParseDue(dueDate, dueTime, app.Location)
		if err != nil {
			return err
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), commands.CreateTaskCommand{
			UserID:      app.CurrentUserID,
			Title:       strings.Join(args, " "),
			Description: description,
			Category:    category,
			DueDate:     due,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		cli.PrintSuccess(out, "Task added: %s", result.Task.Title())
		fmt.Fprintf(out, "  ID:       %s\n", result.Task.ID())
		fmt.Fprintf(out, "  Category: %s\n", result.Task.Category())
		fmt.Fprintf(out, "  Due:      %s\n", result.Task.DueDate().In(app.Location).Format("Mon Jan 2 2006 15:04"))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&description, "description", "", "task description")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "task category (required)")
	addCmd.Flags().StringVarP(&dueDate, "date", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&dueTime, "time", "t", "", "due time (HH:MM)")
}
