package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/pkg/observability"
)

func init() {
	color.NoColor = true
}

func TestPrintBadge(t *testing.T) {
	var buf bytes.Buffer
	PrintBadge(&buf, nil)
	assert.Empty(t, buf.String())

	PrintBadge(&buf, &analytics.EarnedBadge{Name: "Task Initiate", Emoji: "🌱", Level: 1, Type: analytics.BadgeTypeTask})
	assert.Equal(t, "🌱 New badge unlocked: Task Initiate (level 1 task badge)\n", buf.String())
}

func TestPrintStreak(t *testing.T) {
	var buf bytes.Buffer
	PrintStreak(&buf, 0, 4)
	assert.Equal(t, "No active streak (longest 4 days)\n", buf.String())

	buf.Reset()
	PrintStreak(&buf, 3, 4)
	assert.Equal(t, "🔥 3 day streak (longest 4 days)\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"updated": 2}))
	assert.Equal(t, "{\n  \"updated\": 2\n}\n", buf.String())
}

func TestRootCmd_PreRunSeedsContext(t *testing.T) {
	userID := uuid.New()
	a := NewApp(nil, nil, nil, nil, nil, nil)
	a.SetCurrentUserID(userID)
	SetApp(a)
	t.Cleanup(func() { SetApp(nil) })

	rootCmd.SetContext(context.Background())
	rootCmd.PersistentPreRun(rootCmd, nil)

	ctx := rootCmd.Context()
	assert.Equal(t, userID, observability.UserIDFromContext(ctx))
	assert.NotEmpty(t, observability.CorrelationIDFromContext(ctx))
	assert.NotNil(t, Logger())
}
