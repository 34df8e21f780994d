// Package analytics holds the read-only analytics commands.
package analytics

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imsachin001/chronosync/adapter/cli"
)

var asJSON bool

// Cmd is the analytics command group
var Cmd = &cobra.Command{
	Use:     "analytics",
	Short:   "Show task analytics",
	Long:    `Show statistics, productivity scores, streaks, completion times and badges.`,
	Aliases: []string{"stats"},
}

func init() {
	Cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON")

	Cmd.AddCommand(statsCmd)
	Cmd.AddCommand(productivityCmd)
	Cmd.AddCommand(streakCmd)
	Cmd.AddCommand(avgTimeCmd)
	Cmd.AddCommand(weekCmd)
	Cmd.AddCommand(categoriesCmd)
	Cmd.AddCommand(insightsCmd)
	Cmd.AddCommand(badgesCmd)
	Cmd.AddCommand(dashboardCmd)
}

func requireApp() (*cli.App, error) {
	app := cli.GetApp()
	if app == nil || app.Analytics == nil {
		return nil, fmt.Errorf("application not initialized - database connection required")
	}
	return app, nil
}
