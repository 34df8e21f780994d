package application

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
)

const (
	noCompletionsThisWeek = "No tasks completed this week"
	noTasksThisWeek       = "No tasks created this week"
)

// Insights summarises the current Sunday-start week up to today.
type Insights struct {
	MostProductiveDay      string `json:"mostProductiveDay"`
	MostUsedCategory       string `json:"mostUsedCategory"`
	CompletionPercentage   int    `json:"completionPercentage"`
	TotalTasksThisWeek     int    `json:"totalTasksThisWeek"`
	CompletedTasksThisWeek int    `json:"completedTasksThisWeek"`
}

// Insights reads this week from the ledger's daily buckets so deleted tasks
// still count, and falls back to live tasks when the ledger has nothing.
func (e *Engine) Insights(ctx context.Context, userID uuid.UUID) Insights {
	const op = "stats.insights"
	out := Insights{MostProductiveDay: noCompletionsThisWeek, MostUsedCategory: noTasksThisWeek}

	from := domain.SundayWeekStart(e.now(), e.loc)
	to := domain.AddDays(e.today(), 1)

	l, err := e.repos.Stats.Find(ctx, userID)
	if err != nil {
		if !isMissing(err) {
			e.fail(ctx, op, userID, err)
		}
		l = domain.NewStatsLedger(userID)
	}

	out.CompletedTasksThisWeek = l.CompletedBetween(from, to)
	out.TotalTasksThisWeek = l.AssignedBetween(from, to)

	var live []domain.TaskSnapshot
	liveLoaded := false
	loadLive := func() []domain.TaskSnapshot {
		if !liveLoaded {
			liveLoaded = true
			tasks, err := e.tasks.ListCreatedBetween(ctx, userID, e.dayStart(from), e.dayStart(to))
			if err != nil {
				e.fail(ctx, op, userID, err)
			}
			live = tasks
		}
		return live
	}

	if out.TotalTasksThisWeek == 0 {
		tasks := loadLive()
		out.TotalTasksThisWeek = len(tasks)
		out.CompletedTasksThisWeek = 0
		for _, t := range tasks {
			if t.Completed {
				out.CompletedTasksThisWeek++
			}
		}
	}

	if day, ok := mostProductiveDay(l.CompletedByWeekday(from, to)); ok {
		out.MostProductiveDay = day
	}

	if out.TotalTasksThisWeek > 0 {
		counts := l.CategoriesBetween(from, to)
		if len(counts) == 0 {
			for _, t := range loadLive() {
				if t.Category != "" {
					counts[t.Category]++
				}
			}
		}
		if cat, ok := topCategory(counts); ok {
			out.MostUsedCategory = cat
		}
	}

	out.CompletionPercentage = percentOf(out.CompletedTasksThisWeek, out.TotalTasksThisWeek)
	return out
}

// mostProductiveDay picks the weekday with the most completions. Ties go to
// the later day of the Sunday-start week. No completions means no answer.
func mostProductiveDay(byDay map[time.Weekday]int) (string, bool) {
	best, bestCount := time.Sunday, 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if n := byDay[wd]; n > 0 && n >= bestCount {
			best, bestCount = wd, n
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best.String(), true
}

// topCategory picks the highest count, breaking ties alphabetically.
func topCategory(counts map[string]int) (string, bool) {
	best, bestCount := "", 0
	for cat, n := range counts {
		if n > bestCount || (n == bestCount && cat < best) {
			best, bestCount = cat, n
		}
	}
	return best, bestCount > 0
}

func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
