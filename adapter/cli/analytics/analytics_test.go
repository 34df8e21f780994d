package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imsachin001/chronosync/adapter/cli"
	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
	domain "github.com/imsachin001/chronosync/internal/analytics/domain"
)

var testUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) ComprehensiveStats(ctx context.Context, userID uuid.UUID) analyticsApp.ComprehensiveStats {
	return m.Called(ctx, userID).Get(0).(analyticsApp.ComprehensiveStats)
}

func (m *mockEngine) WeekData(ctx context.Context, userID uuid.UUID) []domain.DayPoint {
	return m.Called(ctx, userID).Get(0).([]domain.DayPoint)
}

func (m *mockEngine) AverageCompletionTime(ctx context.Context, userID uuid.UUID) float64 {
	return m.Called(ctx, userID).Get(0).(float64)
}

func (m *mockEngine) StreakData(ctx context.Context, userID uuid.UUID) analyticsApp.StreakData {
	return m.Called(ctx, userID).Get(0).(analyticsApp.StreakData)
}

func (m *mockEngine) WeekOverWeek(ctx context.Context, userID uuid.UUID) []analyticsApp.WeekTotal {
	return m.Called(ctx, userID).Get(0).([]analyticsApp.WeekTotal)
}

func (m *mockEngine) CategoryCompletions(ctx context.Context, userID uuid.UUID, match string) map[string]int {
	return m.Called(ctx, userID, match).Get(0).(map[string]int)
}

func (m *mockEngine) Insights(ctx context.Context, userID uuid.UUID) analyticsApp.Insights {
	return m.Called(ctx, userID).Get(0).(analyticsApp.Insights)
}

func (m *mockEngine) BadgeData(ctx context.Context, userID uuid.UUID) analyticsApp.BadgeData {
	return m.Called(ctx, userID).Get(0).(analyticsApp.BadgeData)
}

func (m *mockEngine) Dashboard(ctx context.Context, userID uuid.UUID) analyticsApp.Dashboard {
	return m.Called(ctx, userID).Get(0).(analyticsApp.Dashboard)
}

func (m *mockEngine) FixBadgeProgress(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockEngine) MigrateCategoryStats(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockEngine) RebuildStats(ctx context.Context, userID uuid.UUID) (analyticsApp.ComprehensiveStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(analyticsApp.ComprehensiveStats), args.Error(1)
}

func setup(t *testing.T) *mockEngine {
	t.Helper()
	engine := &mockEngine{}
	app := cli.NewApp(nil, nil, nil, nil, engine, time.UTC)
	app.SetCurrentUserID(testUserID)
	cli.SetApp(app)
	t.Cleanup(func() {
		cli.SetApp(nil)
		asJSON = false
		categoryMatch = ""
	})
	return engine
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

func sampleBadges() analyticsApp.BadgeData {
	return analyticsApp.BadgeData{
		TaskBadge:      analyticsApp.BadgeSummary{Name: "Getting Things Done", Emoji: "📌", Level: 2, Earned: true},
		TaskProgress:   analyticsApp.BadgeProgress{Current: 12, NextMilestone: 20, Percentage: 20},
		StreakBadge:    analyticsApp.BadgeSummary{Name: "No Badge", Level: 0},
		StreakProgress: analyticsApp.BadgeProgress{Current: 1, NextMilestone: 7, Percentage: 14},
		TotalCompleted: 12,
		CurrentStreak:  1,
		BadgesEarned: []domain.EarnedBadge{
			{Name: "Task Initiate", Emoji: "🐣", Level: 1, Type: domain.BadgeTypeTask, EarnedAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
		},
	}
}

func TestStatsCmd(t *testing.T) {
	engine := setup(t)
	engine.On("ComprehensiveStats", mock.Anything, testUserID).
		Return(analyticsApp.ComprehensiveStats{Assigned: 7, Completed: 4, Overdue: 1})

	out := execute(t, "stats")
	assert.Contains(t, out, "Assigned:  7")
	assert.Contains(t, out, "Completed: 4")
	assert.Contains(t, out, "Overdue:   1")

	asJSON = true
	var decoded analyticsApp.ComprehensiveStats
	require.NoError(t, json.Unmarshal([]byte(execute(t, "stats")), &decoded))
	assert.Equal(t, 7, decoded.Assigned)
	engine.AssertExpectations(t)
}

func TestProductivityCmd(t *testing.T) {
	engine := setup(t)
	series := domain.EmptySeries()
	series[2] = domain.DayPoint{Day: series[2].Day, Completed: 1, Total: 2, Score: 50}
	engine.On("WeekData", mock.Anything, testUserID).Return(series)

	out := execute(t, "productivity")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Mon")
}

func TestStreakCmd(t *testing.T) {
	engine := setup(t)
	engine.On("StreakData", mock.Anything, testUserID).Return(analyticsApp.StreakData{
		CurrentStreak:  3,
		LongestStreak:  5,
		CompletedDates: []string{"2024-06-10", "2024-06-11", "2024-06-12"},
		ActivityData:   []analyticsApp.ActivityCell{{Date: "2024-06-12", Count: 2}},
	})

	out := execute(t, "streak")
	assert.Contains(t, out, "3 day streak")
	assert.Contains(t, out, "longest 5 days")
	assert.Contains(t, out, "2024-06-12  ■■")
}

func TestStreakCmd_NoStreak(t *testing.T) {
	engine := setup(t)
	engine.On("StreakData", mock.Anything, testUserID).Return(analyticsApp.StreakData{LongestStreak: 4})

	assert.Contains(t, execute(t, "streak"), "No active streak (longest 4 days)")
}

func TestAvgTimeAndWeekCmds(t *testing.T) {
	engine := setup(t)
	engine.On("AverageCompletionTime", mock.Anything, testUserID).Return(2.5)
	engine.On("WeekOverWeek", mock.Anything, testUserID).Return([]analyticsApp.WeekTotal{
		{Week: "Last Week", Tasks: 2},
		{Week: "This Week", Tasks: 5},
	})

	assert.Contains(t, execute(t, "avg-time"), "2.5 hours")
	out := execute(t, "week")
	assert.Contains(t, out, "Last Week  2")
	assert.Contains(t, out, "This Week  5")
}

func TestCategoriesCmd_PassesMatch(t *testing.T) {
	engine := setup(t)
	engine.On("CategoryCompletions", mock.Anything, testUserID, "wrk").Return(map[string]int{"Work": 3, "Homework": 3})
	engine.On("CategoryCompletions", mock.Anything, testUserID, "").Return(map[string]int{})

	categoryMatch = "wrk"
	out := execute(t, "categories")
	assert.Regexp(t, `(?s)Homework\s+3.*Work\s+3`, out)

	categoryMatch = ""
	assert.Contains(t, execute(t, "categories"), "No completed tasks yet.")
	engine.AssertExpectations(t)
}

func TestInsightsCmd(t *testing.T) {
	engine := setup(t)
	engine.On("Insights", mock.Anything, testUserID).Return(analyticsApp.Insights{
		MostProductiveDay:      "Tuesday",
		MostUsedCategory:       "Study",
		CompletionPercentage:   50,
		TotalTasksThisWeek:     4,
		CompletedTasksThisWeek: 2,
	})

	out := execute(t, "insights")
	assert.Contains(t, out, "Most productive day: Tuesday")
	assert.Contains(t, out, "Most used category:  Study")
	assert.Contains(t, out, "50% (2 of 4)")
}

func TestBadgesCmd(t *testing.T) {
	engine := setup(t)
	engine.On("BadgeData", mock.Anything, testUserID).Return(sampleBadges())

	out := execute(t, "badges")
	assert.Contains(t, out, "Getting Things Done (level 2)")
	assert.Contains(t, out, "12/20 completed")
	assert.Contains(t, out, "1/7 days")
	assert.Contains(t, out, "Task Initiate (task level 1, 2024-06-10)")
}

func TestDashboardCmd(t *testing.T) {
	engine := setup(t)
	engine.On("Dashboard", mock.Anything, testUserID).Return(analyticsApp.Dashboard{
		Stats:        analyticsApp.ComprehensiveStats{Assigned: 3, Completed: 2},
		Productivity: domain.EmptySeries(),
		Streak:       analyticsApp.StreakData{CurrentStreak: 2, LongestStreak: 2},
		WeekOverWeek: []analyticsApp.WeekTotal{{Week: "Last Week"}, {Week: "This Week", Tasks: 3}},
		Categories:   map[string]int{"Work": 2},
		Insights:     analyticsApp.Insights{MostProductiveDay: "Monday", MostUsedCategory: "Work"},
		Badges:       sampleBadges(),
	})

	out := execute(t, "dashboard")
	for _, want := range []string{
		"Assigned 3  Completed 2  Overdue 0",
		"2 day streak",
		"Most productive day: Monday",
		"Getting Things Done",
	} {
		assert.Contains(t, out, want)
	}
	assert.Regexp(t, `Work\s+2`, out)
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
