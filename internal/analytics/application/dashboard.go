package application

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
)

// Dashboard bundles every analytics view.
type Dashboard struct {
	Stats                 ComprehensiveStats `json:"stats"`
	Productivity          []domain.DayPoint  `json:"productivity"`
	AverageCompletionTime float64            `json:"averageCompletionTime"`
	Streak                StreakData         `json:"streak"`
	WeekOverWeek          []WeekTotal        `json:"weekOverWeek"`
	Categories            map[string]int     `json:"categoryCompletions"`
	Insights              Insights           `json:"insights"`
	Badges                BadgeData          `json:"badges"`
}

// Dashboard refreshes the overdue count, then fetches the remaining views
// concurrently. The views never fail: each logs its own store error and
// falls back to its zero value. The group only reports a canceled request,
// in which case the partial dashboard is returned.
func (e *Engine) Dashboard(ctx context.Context, userID uuid.UUID) Dashboard {
	var d Dashboard
	d.Stats = e.ComprehensiveStats(ctx, userID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Productivity = e.WeekData(gctx, userID)
		return gctx.Err()
	})
	g.Go(func() error {
		d.AverageCompletionTime = e.AverageCompletionTime(gctx, userID)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Streak = e.StreakData(gctx, userID)
		return gctx.Err()
	})
	g.Go(func() error {
		d.WeekOverWeek = e.WeekOverWeek(gctx, userID)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Categories = e.CategoryCompletions(gctx, userID, "")
		return gctx.Err()
	})
	g.Go(func() error {
		d.Insights = e.Insights(gctx, userID)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Badges = e.BadgeData(gctx, userID)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		e.fail(ctx, "dashboard", userID, err)
	}
	return d
}
