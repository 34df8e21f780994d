package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
)

var (
	status         string
	filterCategory string
	asJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks sorted by due date.

Filter Options:
  --status      all (default), pending, completed or overdue
  --category    only tasks in this category

Examples:
  chronosync task list
  chronosync task list --status overdue
  chronosync task list --category Work --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:   app.CurrentUserID,
			Status:   status,
			Category: filterCategory,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, tasks)
		}
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-3s  %-16s  %-12s  %s\n", "ID", "", "DUE", "CATEGORY", "TITLE")
		fmt.Fprintln(out, strings.Repeat("-", 90))
		for _, t := range tasks {
			fmt.Fprintf(out, "%-36s  %-3s  %-16s  %-12s  %s\n",
				t.ID, marker(t), t.DueDate.In(app.Location).Format("2006-01-02 15:04"), t.Category, t.Title)
		}
		fmt.Fprintf(out, "\n%d task(s)\n", len(tasks))
		return nil
	},
}

func marker(t queries.TaskDTO) string {
	switch {
	case t.Completed:
		return "[x]"
	case t.Overdue:
		return "[!]"
	default:
		return "[ ]"
	}
}

func init() {
	listCmd.Flags().StringVar(&status, "status", "", "filter by status (all, pending, completed, overdue)")
	listCmd.Flags().StringVar(&filterCategory, "category", "", "filter by category")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
}
