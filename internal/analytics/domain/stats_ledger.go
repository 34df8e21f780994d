package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DailyStats is one day's activity in a StatsLedger.
type DailyStats struct {
	Date           string         `json:"date"`
	TasksAssigned  int            `json:"tasksAssigned"`
	TasksCompleted int            `json:"tasksCompleted"`
	TasksOverdue   int            `json:"tasksOverdue"`
	CategoryStats  map[string]int `json:"categoryStats"`
}

// StatsLedger holds a user's lifetime task counters.
// Assigned counts are permanent: deleting a task never lowers them.
type StatsLedger struct {
	UserID              uuid.UUID      `json:"userId"`
	TotalAssigned       int            `json:"totalAssigned"`
	TotalCompleted      int            `json:"totalCompleted"`
	TotalOverdue        int            `json:"totalOverdue"`
	DailyStats          []DailyStats   `json:"dailyStats"`
	CategoryCompletions map[string]int `json:"categoryCompletions"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// NewStatsLedger creates an empty ledger.
func NewStatsLedger(userID uuid.UUID) *StatsLedger {
	return &StatsLedger{
		UserID:              userID,
		DailyStats:          []DailyStats{},
		CategoryCompletions: make(map[string]int),
	}
}

// Day returns the bucket for day, or nil.
func (l *StatsLedger) Day(day string) *DailyStats {
	i := sort.Search(len(l.DailyStats), func(i int) bool { return l.DailyStats[i].Date >= day })
	if i < len(l.DailyStats) && l.DailyStats[i].Date == day {
		return &l.DailyStats[i]
	}
	return nil
}

func (l *StatsLedger) ensureDay(day string) *DailyStats {
	i := sort.Search(len(l.DailyStats), func(i int) bool { return l.DailyStats[i].Date >= day })
	if i < len(l.DailyStats) && l.DailyStats[i].Date == day {
		return &l.DailyStats[i]
	}
	l.DailyStats = append(l.DailyStats, DailyStats{})
	copy(l.DailyStats[i+1:], l.DailyStats[i:])
	l.DailyStats[i] = DailyStats{Date: day, CategoryStats: make(map[string]int)}
	return &l.DailyStats[i]
}

// RecordCreated counts a newly assigned task on day.
func (l *StatsLedger) RecordCreated(day, category string) {
	l.TotalAssigned++
	bucket := l.ensureDay(day)
	bucket.TasksAssigned++
	if category != "" {
		if bucket.CategoryStats == nil {
			bucket.CategoryStats = make(map[string]int)
		}
		bucket.CategoryStats[category]++
	}
}

// RecordCompletion applies a completion toggle on day. Uncompleting mirrors
// the increments but never drives a counter below zero, and only touches
// the day's bucket if one exists.
func (l *StatsLedger) RecordCompletion(day, category string, completed bool) {
	if l.CategoryCompletions == nil {
		l.CategoryCompletions = make(map[string]int)
	}

	if completed {
		l.TotalCompleted++
		l.ensureDay(day).TasksCompleted++
		if category != "" {
			l.CategoryCompletions[category]++
		}
		return
	}

	l.TotalCompleted = max(0, l.TotalCompleted-1)
	if bucket := l.Day(day); bucket != nil {
		bucket.TasksCompleted = max(0, bucket.TasksCompleted-1)
	}
	if category != "" {
		l.CategoryCompletions[category] = max(0, l.CategoryCompletions[category]-1)
	}
}

// SetOverdue replaces the overdue total.
func (l *StatsLedger) SetOverdue(n int) {
	l.TotalOverdue = max(0, n)
}

// between calls fn for every bucket with from <= date < to.
func (l *StatsLedger) between(from, to string, fn func(*DailyStats)) {
	for i := range l.DailyStats {
		d := &l.DailyStats[i]
		if d.Date >= from && d.Date < to {
			fn(d)
		}
	}
}

// CompletedBetween sums tasksCompleted for from <= date < to.
func (l *StatsLedger) CompletedBetween(from, to string) int {
	total := 0
	l.between(from, to, func(d *DailyStats) { total += d.TasksCompleted })
	return total
}

// AssignedBetween sums tasksAssigned for from <= date < to.
func (l *StatsLedger) AssignedBetween(from, to string) int {
	total := 0
	l.between(from, to, func(d *DailyStats) { total += d.TasksAssigned })
	return total
}

// CategoriesBetween merges the per-day category maps for from <= date < to.
func (l *StatsLedger) CategoriesBetween(from, to string) map[string]int {
	out := make(map[string]int)
	l.between(from, to, func(d *DailyStats) {
		for c, n := range d.CategoryStats {
			out[c] += n
		}
	})
	return out
}

// CompletedByWeekday sums tasksCompleted per weekday for from <= date < to.
func (l *StatsLedger) CompletedByWeekday(from, to string) map[time.Weekday]int {
	out := make(map[time.Weekday]int)
	l.between(from, to, func(d *DailyStats) {
		if wd, err := WeekdayOf(d.Date); err == nil {
			out[wd] += d.TasksCompleted
		}
	})
	return out
}

// BackfillCategoryStats gives every bucket a non-nil category map and
// reports whether anything changed.
func (l *StatsLedger) BackfillCategoryStats() bool {
	changed := false
	for i := range l.DailyStats {
		if l.DailyStats[i].CategoryStats == nil {
			l.DailyStats[i].CategoryStats = make(map[string]int)
			changed = true
		}
	}
	if l.CategoryCompletions == nil {
		l.CategoryCompletions = make(map[string]int)
		changed = true
	}
	return changed
}

// RebuildStatsLedger derives a ledger from the live task list. Buckets are
// keyed by each task's creation day.
func RebuildStatsLedger(userID uuid.UUID, tasks []TaskSnapshot, overdue int, loc *time.Location) *StatsLedger {
	l := NewStatsLedger(userID)
	for _, t := range tasks {
		day := DayKey(t.CreatedAt, loc)
		l.RecordCreated(day, t.Category)
		if t.Completed {
			l.RecordCompletion(day, t.Category, true)
		}
	}
	l.SetOverdue(overdue)
	return l
}
