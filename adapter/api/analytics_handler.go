package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
)

// AnalyticsService is the read and repair surface of the analytics engine.
type AnalyticsService interface {
	ComprehensiveStats(ctx context.Context, userID uuid.UUID) analyticsApp.ComprehensiveStats
	WeekData(ctx context.Context, userID uuid.UUID) []analytics.DayPoint
	AverageCompletionTime(ctx context.Context, userID uuid.UUID) float64
	StreakData(ctx context.Context, userID uuid.UUID) analyticsApp.StreakData
	WeekOverWeek(ctx context.Context, userID uuid.UUID) []analyticsApp.WeekTotal
	CategoryCompletions(ctx context.Context, userID uuid.UUID, match string) map[string]int
	Insights(ctx context.Context, userID uuid.UUID) analyticsApp.Insights
	BadgeData(ctx context.Context, userID uuid.UUID) analyticsApp.BadgeData
	Dashboard(ctx context.Context, userID uuid.UUID) analyticsApp.Dashboard
	FixBadgeProgress(ctx context.Context) (int, error)
	MigrateCategoryStats(ctx context.Context) (int, error)
	RebuildStats(ctx context.Context, userID uuid.UUID) (analyticsApp.ComprehensiveStats, error)
}

// AnalyticsHandler serves analytics views and maintenance routines.
type AnalyticsHandler struct {
	engine AnalyticsService
	logger *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(engine AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{engine: engine, logger: logger}
}

// Stats handles GET /api/v1/analytics/stats
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.ComprehensiveStats(r.Context(), userFrom(r)))
}

// ProductivityScore handles GET /api/v1/analytics/productivity-score
func (h *AnalyticsHandler) ProductivityScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.WeekData(r.Context(), userFrom(r)))
}

// AverageCompletionTime handles GET /api/v1/analytics/avg-completion-time
func (h *AnalyticsHandler) AverageCompletionTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]float64{
		"averageCompletionTime": h.engine.AverageCompletionTime(r.Context(), userFrom(r)),
	})
}

// CompletionStreak handles GET /api/v1/analytics/completion-streak
func (h *AnalyticsHandler) CompletionStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.StreakData(r.Context(), userFrom(r)))
}

// WeekOverWeek handles GET /api/v1/analytics/week-over-week
func (h *AnalyticsHandler) WeekOverWeek(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.WeekOverWeek(r.Context(), userFrom(r)))
}

// CategoryCompletions handles GET /api/v1/analytics/category-completions?match=
func (h *AnalyticsHandler) CategoryCompletions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.CategoryCompletions(r.Context(), userFrom(r), r.URL.Query().Get("match")))
}

// Insights handles GET /api/v1/analytics/productivity-insights
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Insights(r.Context(), userFrom(r)))
}

// Badges handles GET /api/v1/analytics/badges
func (h *AnalyticsHandler) Badges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.BadgeData(r.Context(), userFrom(r)))
}

// Dashboard handles GET /api/v1/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Dashboard(r.Context(), userFrom(r)))
}

// FixBadges handles POST /api/v1/maintenance/fix-badges
func (h *AnalyticsHandler) FixBadges(w http.ResponseWriter, r *http.Request) {
	n, err := h.engine.FixBadgeProgress(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fix badge progress", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fix badge progress")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}

// MigrateCategoryStats handles POST /api/v1/maintenance/migrate-category-stats
func (h *AnalyticsHandler) MigrateCategoryStats(w http.ResponseWriter, r *http.Request) {
	n, err := h.engine.MigrateCategoryStats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to migrate category stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to migrate category stats")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"migrated": n})
}

// RebuildStats handles POST /api/v1/maintenance/rebuild-stats
func (h *AnalyticsHandler) RebuildStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.RebuildStats(r.Context(), userFrom(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to rebuild stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to rebuild stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
