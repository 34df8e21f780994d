// Package maintenance holds the repair commands for analytics ledgers.
package maintenance

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
)

// Cmd is the maintenance command group
var Cmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Repair analytics ledgers",
	Long: `Idempotent repair routines. Safe to run more than once.

Examples:
  chronosync maintenance fix-badges
  chronosync maintenance migrate-category-stats
  chronosync maintenance rebuild-stats`,
}

var fixBadgesCmd = &cobra.Command{
	Use:   "fix-badges",
	Short: "Realign task badges with the lifetime completion counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		n, err := app.Analytics.FixBadgeProgress(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fix badge progress: %w", err)
		}
		cli.PrintSuccess(cmd.OutOrStdout(), "Badge states updated: %d", n)
		return nil
	},
}

var migrateCategoryStatsCmd = &cobra.Command{
	Use:   "migrate-category-stats",
	Short: "Add empty category histograms to ledgers that lack one",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		n, err := app.Analytics.MigrateCategoryStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to migrate category stats: %w", err)
		}
		cli.PrintSuccess(cmd.OutOrStdout(), "Ledgers migrated: %d", n)
		return nil
	},
}

var rebuildStatsCmd = &cobra.Command{
	Use:   "rebuild-stats",
	Short: "Rebuild the current user's statistics from live tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		stats, err := app.Analytics.RebuildStats(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to rebuild stats: %w", err)
		}
		out := cmd.OutOrStdout()
		cli.PrintSuccess(out, "Statistics rebuilt")
		fmt.Fprintf(out, "Assigned %d  Completed %d  Overdue %d\n", stats.Assigned, stats.Completed, stats.Overdue)
		return nil
	},
}

func init() {
	Cmd.AddCommand(fixBadgesCmd)
	Cmd.AddCommand(migrateCategoryStatsCmd)
	Cmd.AddCommand(rebuildStatsCmd)
}

func requireApp() (*cli.App, error) {
	app := cli.GetApp()
	if app == nil || app.Analytics == nil {
		return nil, fmt.Errorf("application not initialized - database connection required")
	}
	return app, nil
}
