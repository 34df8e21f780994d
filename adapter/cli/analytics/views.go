package analytics

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assigned, completed and overdue counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		stats := app.Analytics.ComprehensiveStats(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, stats)
		}
		fmt.Fprintf(out, "Assigned:  %d\n", stats.Assigned)
		fmt.Fprintf(out, "Completed: %d\n", stats.Completed)
		fmt.Fprintf(out, "Overdue:   %d\n", stats.Overdue)
		return nil
	},
}

var productivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Show this week's daily productivity scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		days := app.Analytics.WeekData(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, days)
		}
		for _, d := range days {
			fmt.Fprintf(out, "%-9s %3d%%  %-20s %d/%d\n", d.Day, d.Score, bar(d.Score, 20), d.Completed, d.Total)
		}
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and longest completion streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		streak := app.Analytics.StreakData(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, streak)
		}
		cli.PrintStreak(out, streak.CurrentStreak, streak.LongestStreak)
		for _, cell := range streak.ActivityData {
			fmt.Fprintf(out, "  %s  %s\n", cell.Date, strings.Repeat("■", cell.Count))
		}
		return nil
	},
}

var avgTimeCmd = &cobra.Command{
	Use:   "avg-time",
	Short: "Show the average hours from creation to completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		hours := app.Analytics.AverageCompletionTime(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, map[string]float64{"averageCompletionTime": hours})
		}
		fmt.Fprintf(out, "Average completion time: %.1f hours\n", hours)
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Compare last week with this week",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		weeks := app.Analytics.WeekOverWeek(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, weeks)
		}
		for _, w := range weeks {
			fmt.Fprintf(out, "%-10s %d\n", w.Week, w.Tasks)
		}
		return nil
	},
}

var categoryMatch string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show completed tasks per category",
	Long: `Show the lifetime number of completed tasks per category.

Examples:
  chronosync analytics categories
  chronosync analytics categories --match wrk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		counts := app.Analytics.CategoryCompletions(cmd.Context(), app.CurrentUserID, categoryMatch)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, counts)
		}
		printCategories(out, counts)
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show this week's productivity insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		in := app.Analytics.Insights(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, in)
		}
		fmt.Fprintf(out, "Most productive day: %s\n", in.MostProductiveDay)
		fmt.Fprintf(out, "Most used category:  %s\n", in.MostUsedCategory)
		fmt.Fprintf(out, "Completion:          %d%% (%d of %d)\n", in.CompletionPercentage, in.CompletedTasksThisWeek, in.TotalTasksThisWeek)
		return nil
	},
}

func init() {
	categoriesCmd.Flags().StringVar(&categoryMatch, "match", "", "fuzzy filter on category names")
}

// printCategories lists categories by count, highest first.
func printCategories(out io.Writer, counts map[string]int) {
	if len(counts) == 0 {
		fmt.Fprintln(out, "No completed tasks yet.")
		return
	}
	names := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	for _, name := range names {
		fmt.Fprintf(out, "%-16s %d\n", name, counts[name])
	}
}

func bar(percent, width int) string {
	filled := min(width, max(0, percent*width/100))
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}
