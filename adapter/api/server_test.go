package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
	"github.com/imsachin001/chronosync/internal/app"
	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
	"github.com/imsachin001/chronosync/pkg/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires a server against a sqlite-backed container.
func newTestServer(t *testing.T) (*Server, *app.Container) {
	t.Helper()

	cfg := &config.Config{
		AppEnv:               "test",
		UserID:               config.DefaultUserID,
		Timezone:             "UTC",
		SQLitePath:           filepath.Join(t.TempDir(), "api.db"),
		AnalyticsStore:       "sql",
		StoreBreakerFailures: 2,
		StoreBreakerTimeout:  time.Second,
		EventsExchange:       "chronosync.events",
	}
	c, err := app.NewContainer(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	tasks := NewTaskHandler(TaskHandlerConfig{
		Create:   c.CreateTaskHandler,
		Toggle:   c.ToggleTaskHandler,
		Delete:   c.DeleteTaskHandler,
		List:     c.ListTasksHandler,
		Location: c.Location,
		Logger:   quietLogger(),
	})
	serverCfg := DefaultServerConfig()
	serverCfg.DefaultUser = c.UserID
	return NewServer(serverCfg, tasks, NewAnalyticsHandler(c.Analytics, quietLogger()), quietLogger()), c
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func createTask(t *testing.T, s *Server, title, category string) queries.TaskDTO {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{
		Title:    title,
		Category: category,
		Date:     tomorrow(),
		Time:     "12:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var dto queries.TaskDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	return dto
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestTaskLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	first := createTask(t, s, "Write report", "Work")
	createTask(t, s, "Read chapter", "Study")

	rec := do(t, s, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []queries.TaskDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	rec = do(t, s, http.MethodPatch, "/api/v1/tasks/"+first.ID.String()+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled ToggleTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled.Task.Completed)
	assert.Nil(t, toggled.NewlyEarnedBadge)

	rec = do(t, s, http.MethodGet, "/api/v1/tasks?status=completed", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, first.ID, listed[0].ID)

	rec = do(t, s, http.MethodDelete, "/api/v1/tasks/"+first.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/analytics/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats analyticsApp.ComprehensiveStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, analyticsApp.ComprehensiveStats{Assigned: 2, Completed: 1, Overdue: 0}, stats)
}

func TestCreateTask_Validation(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"empty title", CreateTaskRequest{Category: "Work", Date: tomorrow(), Time: "09:00"}},
		{"empty category", CreateTaskRequest{Title: "x", Date: tomorrow(), Time: "09:00"}},
		{"missing time", CreateTaskRequest{Title: "x", Category: "Work", Date: tomorrow()}},
		{"bad date", CreateTaskRequest{Title: "x", Category: "Work", Date: "13/01/2024", Time: "09:00"}},
		{"not json", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestToggleTask_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+uuid.NewString()+"/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPatch, "/api/v1/tasks/not-a-uuid/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleTask_OtherUsersTask(t *testing.T) {
	s, _ := newTestServer(t)
	created := createTask(t, s, "Private", "Work")

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/"+created.ID.String()+"/toggle", nil)
	req.Header.Set(HeaderUserID, uuid.NewString())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidUserHeader(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stats", nil)
	req.Header.Set(HeaderUserID, "bogus")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	created := createTask(t, s, "Write report", "Work")
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID.String()+"/toggle", nil).Code)

	t.Run("productivity score has seven days", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/analytics/productivity-score", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var days []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
		assert.Len(t, days, 7)
	})

	t.Run("streak", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/analytics/completion-streak", nil)
		var streak analyticsApp.StreakData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &streak))
		assert.Equal(t, 1, streak.CurrentStreak)
		assert.Equal(t, 1, streak.LongestStreak)
	})

	t.Run("week over week labels", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/analytics/week-over-week", nil)
		var weeks []analyticsApp.WeekTotal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &weeks))
		require.Len(t, weeks, 2)
		assert.Equal(t, "Last Week", weeks[0].Week)
		assert.Equal(t, "This Week", weeks[1].Week)
	})

	t.Run("category completions with match", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/analytics/category-completions?match=wrk", nil)
		var counts map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
		assert.Equal(t, map[string]int{"Work": 1}, counts)

		rec = do(t, s, http.MethodGet, "/api/v1/analytics/category-completions?match=zzz", nil)
		counts = nil
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
		assert.Empty(t, counts)
	})

	t.Run("badges", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/analytics/badges", nil)
		var badges analyticsApp.BadgeData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &badges))
		assert.Equal(t, 1, badges.TotalCompleted)
		assert.Equal(t, 5, badges.TaskProgress.NextMilestone)
		assert.Equal(t, 20, badges.TaskProgress.Percentage)
	})

	t.Run("dashboard and the remaining views", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/analytics/avg-completion-time",
			"/api/v1/analytics/productivity-insights",
			"/api/v1/analytics/dashboard",
		} {
			rec := do(t, s, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), path)
		}
	})
}

func TestMaintenanceRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	createTask(t, s, "Write report", "Work")

	rec := do(t, s, http.MethodPost, "/api/v1/maintenance/fix-badges", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "updated")

	rec = do(t, s, http.MethodPost, "/api/v1/maintenance/migrate-category-stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "migrated")

	rec = do(t, s, http.MethodPost, "/api/v1/maintenance/rebuild-stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats analyticsApp.ComprehensiveStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Assigned)
}

// failingEngine fails every repair routine.
type failingEngine struct {
	AnalyticsService
}

func (failingEngine) FixBadgeProgress(context.Context) (int, error) {
	return 0, errors.New("store down")
}

func (failingEngine) MigrateCategoryStats(context.Context) (int, error) {
	return 0, errors.New("store down")
}

func (failingEngine) RebuildStats(context.Context, uuid.UUID) (analyticsApp.ComprehensiveStats, error) {
	return analyticsApp.ComprehensiveStats{}, errors.New("store down")
}

func TestMaintenanceRoutes_Failures(t *testing.T) {
	s := NewServer(DefaultServerConfig(), NewTaskHandler(TaskHandlerConfig{}), NewAnalyticsHandler(failingEngine{}, quietLogger()), quietLogger())

	for _, path := range []string{
		"/api/v1/maintenance/fix-badges",
		"/api/v1/maintenance/migrate-category-stats",
		"/api/v1/maintenance/rebuild-stats",
	} {
		rec := do(t, s, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
	}
}
