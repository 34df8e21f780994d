package maintenance

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsachin001/chronosync/adapter/cli"
	internalApp "github.com/imsachin001/chronosync/internal/app"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
	"github.com/imsachin001/chronosync/pkg/config"
)

func setup(t *testing.T) *internalApp.Container {
	t.Helper()
	cfg := &config.Config{
		AppEnv:               "test",
		UserID:               config.DefaultUserID,
		Timezone:             "UTC",
		SQLitePath:           filepath.Join(t.TempDir(), "maintenance.db"),
		AnalyticsStore:       "sql",
		StoreBreakerFailures: 2,
		StoreBreakerTimeout:  time.Second,
		EventsExchange:       "chronosync.events",
	}
	c, err := internalApp.NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(c.Close)

	app := cli.NewApp(c.CreateTaskHandler, c.ToggleTaskHandler, c.DeleteTaskHandler, c.ListTasksHandler, c.Analytics, c.Location)
	app.SetCurrentUserID(c.UserID)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })
	return c
}

func execute(t *testing.T, name string) string {
	t.Helper()
	cmd, _, err := Cmd.Find([]string{name})
	require.NoError(t, err)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.RunE(cmd, nil))
	return out.String()
}

func TestRebuildStatsCmd(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	for _, title := range []string{"One", "Two"} {
		_, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{UserID: c.UserID, Title: title, Category: "Work", DueDate: due})
		require.NoError(t, err)
	}

	out := execute(t, "rebuild-stats")
	assert.Contains(t, out, "Statistics rebuilt")
	assert.Contains(t, out, "Assigned 2  Completed 0  Overdue 0")

	assert.Contains(t, execute(t, "rebuild-stats"), "Assigned 2  Completed 0  Overdue 0")
}

func TestFixBadgesAndMigrateCmds(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	created, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		UserID: c.UserID, Title: "One", Category: "Work", DueDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = c.ToggleTaskHandler.Handle(ctx, commands.ToggleTaskCommand{TaskID: created.Task.ID(), UserID: c.UserID})
	require.NoError(t, err)

	assert.Contains(t, execute(t, "fix-badges"), "Badge states updated: 0")
	assert.Contains(t, execute(t, "migrate-category-stats"), "Ledgers migrated: 0")
}

func TestCommands_RequireApp(t *testing.T) {
	cli.SetApp(nil)
	for _, cmd := range Cmd.Commands() {
		cmd.SetContext(context.Background())
		err := cmd.RunE(cmd, nil)
		require.Error(t, err, cmd.Name())
		assert.Contains(t, err.Error(), "application not initialized", cmd.Name())
	}
}
