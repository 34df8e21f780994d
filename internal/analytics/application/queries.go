package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
)

// ComprehensiveStats is the lifetime task summary.
type ComprehensiveStats struct {
	Assigned  int `json:"assigned"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// StreakData is the streak ledger plus a per-day heatmap of completions.
type StreakData struct {
	CurrentStreak  int            `json:"currentStreak"`
	LongestStreak  int            `json:"longestStreak"`
	CompletedDates []string       `json:"completedDates"`
	ActivityData   []ActivityCell `json:"activityData"`
}

// ActivityCell is one heatmap day.
type ActivityCell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeekTotal is one bar of the week-over-week comparison.
type WeekTotal struct {
	Week  string `json:"week"`
	Tasks int    `json:"tasks"`
}

// ComprehensiveStats recomputes the overdue total and returns the summary.
func (e *Engine) ComprehensiveStats(ctx context.Context, userID uuid.UUID) ComprehensiveStats {
	l := e.recomputeOverdue(ctx, userID, 0)
	if l == nil {
		return ComprehensiveStats{}
	}
	return ComprehensiveStats{
		Assigned:  l.TotalAssigned,
		Completed: l.TotalCompleted,
		Overdue:   l.TotalOverdue,
	}
}

// WeekData returns Monday..Sunday scores for the current ISO week.
func (e *Engine) WeekData(ctx context.Context, userID uuid.UUID) []domain.DayPoint {
	w, err := e.repos.Productivity.GetOrCreateWeek(ctx, userID, domain.ISOWeekStart(e.now(), e.loc))
	if err != nil {
		e.fail(ctx, "productivity.week_data", userID, err)
		return domain.EmptySeries()
	}
	return w.Series()
}

// AverageCompletionTime is the mean creation-to-completion latency in hours.
func (e *Engine) AverageCompletionTime(ctx context.Context, userID uuid.UUID) float64 {
	records, err := e.repos.CompletionTimes.ListByUser(ctx, userID)
	if err != nil {
		e.fail(ctx, "completion_time.average", userID, err)
		return 0
	}
	return domain.AverageHours(records)
}

// StreakData returns the streak ledger with a heatmap rebuilt from the live
// completed tasks rather than the ledger's own date set.
func (e *Engine) StreakData(ctx context.Context, userID uuid.UUID) StreakData {
	const op = "streak.data"
	out := StreakData{CompletedDates: []string{}, ActivityData: []ActivityCell{}}

	s, err := e.repos.Streaks.GetOrCreate(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return out
	}
	out.CurrentStreak = s.CurrentStreak
	out.LongestStreak = s.LongestStreak
	out.CompletedDates = append(out.CompletedDates, s.CompletedDates...)

	stamps, err := e.tasks.CompletedDates(ctx, userID)
	if err != nil {
		e.fail(ctx, op, userID, err)
		return out
	}
	out.ActivityData = activity(stamps, e.loc)
	return out
}

func activity(stamps []time.Time, loc *time.Location) []ActivityCell {
	counts := make(map[string]int)
	for _, ts := range stamps {
		counts[domain.DayKey(ts, loc)]++
	}
	cells := make([]ActivityCell, 0, len(counts))
	for day, n := range counts {
		cells = append(cells, ActivityCell{Date: day, Count: n})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })
	return cells
}

// WeekOverWeek compares completions last week with this week so far. Weeks
// start on Sunday. This week also counts open tasks created or due in it.
func (e *Engine) WeekOverWeek(ctx context.Context, userID uuid.UUID) []WeekTotal {
	const op = "stats.week_over_week"
	out := []WeekTotal{{Week: "Last Week"}, {Week: "This Week"}}

	l, err := e.repos.Stats.Find(ctx, userID)
	if err != nil {
		if !isMissing(err) {
			e.fail(ctx, op, userID, err)
		}
		return out
	}

	thisWeek := domain.SundayWeekStart(e.now(), e.loc)
	lastWeek := domain.AddDays(thisWeek, -7)
	tomorrow := domain.AddDays(e.today(), 1)

	out[0].Tasks = l.CompletedBetween(lastWeek, thisWeek)
	out[1].Tasks = l.CompletedBetween(thisWeek, tomorrow)

	ongoing, err := e.tasks.CountOngoingBetween(ctx, userID, e.dayStart(thisWeek), e.dayStart(tomorrow))
	if err != nil {
		e.fail(ctx, op, userID, err)
		return out
	}
	out[1].Tasks += ongoing
	return out
}
