package analytics

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show badge levels and progress to the next milestone",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		data := app.Analytics.BadgeData(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, data)
		}
		printBadges(out, data)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show every analytics view at once",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		d := app.Analytics.Dashboard(cmd.Context(), app.CurrentUserID)

		out := cmd.OutOrStdout()
		if asJSON {
			return cli.PrintJSON(out, d)
		}

		section(out, "Tasks")
		fmt.Fprintf(out, "Assigned %d  Completed %d  Overdue %d\n", d.Stats.Assigned, d.Stats.Completed, d.Stats.Overdue)
		fmt.Fprintf(out, "Average completion time: %.1f hours\n", d.AverageCompletionTime)

		section(out, "This week")
		for _, p := range d.Productivity {
			fmt.Fprintf(out, "%-9s %3d%%\n", p.Day, p.Score)
		}
		for _, w := range d.WeekOverWeek {
			fmt.Fprintf(out, "%-10s %d\n", w.Week, w.Tasks)
		}
		fmt.Fprintf(out, "Most productive day: %s\n", d.Insights.MostProductiveDay)
		fmt.Fprintf(out, "Most used category:  %s\n", d.Insights.MostUsedCategory)

		section(out, "Streak")
		cli.PrintStreak(out, d.Streak.CurrentStreak, d.Streak.LongestStreak)

		section(out, "Categories")
		printCategories(out, d.Categories)

		section(out, "Badges")
		printBadges(out, d.Badges)
		return nil
	},
}

func section(out io.Writer, title string) {
	fmt.Fprintf(out, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func printBadges(out io.Writer, data analyticsApp.BadgeData) {
	printTrack(out, "Tasks", data.TaskBadge, data.TaskProgress, "completed")
	printTrack(out, "Streak", data.StreakBadge, data.StreakProgress, "days")
	if len(data.BadgesEarned) > 0 {
		fmt.Fprintln(out, "Earned:")
		for i := range data.BadgesEarned {
			b := data.BadgesEarned[i]
			fmt.Fprintf(out, "  %s %s (%s level %d, %s)\n", b.Emoji, b.Name, b.Type, b.Level, b.EarnedAt.Format("2006-01-02"))
		}
	}
}

func printTrack(out io.Writer, label string, badge analyticsApp.BadgeSummary, progress analyticsApp.BadgeProgress, unit string) {
	fmt.Fprintf(out, "%-7s %s %s (level %d)  %d/%d %s  %s %d%%\n",
		label, badge.Emoji, badge.Name, badge.Level,
		progress.Current, progress.NextMilestone, unit,
		bar(progress.Percentage, 10), progress.Percentage)
}
