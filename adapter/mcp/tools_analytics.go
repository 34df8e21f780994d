package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/imsachin001/chronosync/adapter/cli"
	analyticsApp "github.com/imsachin001/chronosync/internal/analytics/application"
	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
)

type categoriesInput struct {
	Match string `json:"match,omitempty"`
}

var errNoAnalytics = errors.New("analytics requires database connection")

func registerAnalyticsTools(srv *mcp.Server, app *cli.App) {
	srv.Tool("analytics.stats").
		Description("Lifetime assigned, completed and currently overdue task counts").
		Handler(stats(app))

	srv.Tool("analytics.productivity").
		Description("This week's daily productivity scores, Monday through Sunday").
		Handler(productivity(app))

	srv.Tool("analytics.streak").
		Description("Current and longest completion streak with daily activity").
		Handler(streak(app))

	srv.Tool("analytics.avg_completion_time").
		Description("Mean hours from task creation to completion").
		Handler(avgCompletionTime(app))

	srv.Tool("analytics.week_over_week").
		Description("Tasks completed last week versus this week").
		Handler(weekOverWeek(app))

	srv.Tool("analytics.categories").
		Description("Completed tasks per category, optionally narrowed by a fuzzy match").
		Handler(categories(app))

	srv.Tool("analytics.insights").
		Description("Most productive day, most used category and completion rate this week").
		Handler(insights(app))

	srv.Tool("analytics.badges").
		Description("Badge levels, progress to the next milestone and earned history").
		Handler(badges(app))

	srv.Tool("analytics.dashboard").
		Description("Every analytics view in one response").
		Handler(dashboard(app))
}

func ready(app *cli.App) error {
	if app == nil || app.Analytics == nil {
		return errNoAnalytics
	}
	return nil
}

func stats(app *cli.App) func(context.Context, struct{}) (*analyticsApp.ComprehensiveStats, error) {
	return func(ctx context.Context, _ struct{}) (*analyticsApp.ComprehensiveStats, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		s := app.Analytics.ComprehensiveStats(ctx, app.CurrentUserID)
		return &s, nil
	}
}

func productivity(app *cli.App) func(context.Context, struct{}) ([]analytics.DayPoint, error) {
	return func(ctx context.Context, _ struct{}) ([]analytics.DayPoint, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		return app.Analytics.WeekData(ctx, app.CurrentUserID), nil
	}
}

func streak(app *cli.App) func(context.Context, struct{}) (*analyticsApp.StreakData, error) {
	return func(ctx context.Context, _ struct{}) (*analyticsApp.StreakData, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		s := app.Analytics.StreakData(ctx, app.CurrentUserID)
		return &s, nil
	}
}

func avgCompletionTime(app *cli.App) func(context.Context, struct{}) (map[string]float64, error) {
	return func(ctx context.Context, _ struct{}) (map[string]float64, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		return map[string]float64{"average_completion_time": app.Analytics.AverageCompletionTime(ctx, app.CurrentUserID)}, nil
	}
}

func weekOverWeek(app *cli.App) func(context.Context, struct{}) ([]analyticsApp.WeekTotal, error) {
	return func(ctx context.Context, _ struct{}) ([]analyticsApp.WeekTotal, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		return app.Analytics.WeekOverWeek(ctx, app.CurrentUserID), nil
	}
}

func categories(app *cli.App) func(context.Context, categoriesInput) (map[string]int, error) {
	return func(ctx context.Context, input categoriesInput) (map[string]int, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		return app.Analytics.CategoryCompletions(ctx, app.CurrentUserID, input.Match), nil
	}
}

func insights(app *cli.App) func(context.Context, struct{}) (*analyticsApp.Insights, error) {
	return func(ctx context.Context, _ struct{}) (*analyticsApp.Insights, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		in := app.Analytics.Insights(ctx, app.CurrentUserID)
		return &in, nil
	}
}

func badges(app *cli.App) func(context.Context, struct{}) (*analyticsApp.BadgeData, error) {
	return func(ctx context.Context, _ struct{}) (*analyticsApp.BadgeData, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		b := app.Analytics.BadgeData(ctx, app.CurrentUserID)
		return &b, nil
	}
}

func dashboard(app *cli.App) func(context.Context, struct{}) (*analyticsApp.Dashboard, error) {
	return func(ctx context.Context, _ struct{}) (*analyticsApp.Dashboard, error) {
		if err := ready(app); err != nil {
			return nil, err
		}
		d := app.Analytics.Dashboard(ctx, app.CurrentUserID)
		return &d, nil
	}
}
