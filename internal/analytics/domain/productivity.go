package domain

import (
	"time"

	"github.com/google/uuid"
)

// DayScore is a weekday's completed and total counts.
type DayScore struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Score is the day's completion ratio as 0..100.
func (d DayScore) Score() int {
	return min(100, percent(d.Completed, d.Total))
}

// ProductivityWeek holds per-weekday counts for one ISO week.
type ProductivityWeek struct {
	UserID      uuid.UUID           `json:"userId"`
	WeekStart   string              `json:"weekStart"`
	WeekEnd     string              `json:"weekEnd"`
	DailyScores map[string]DayScore `json:"dailyScores"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// DayPoint is one entry of the weekly series.
type DayPoint struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Score     int    `json:"score"`
}

// NewProductivityWeek creates an empty week starting on the Monday weekStart.
func NewProductivityWeek(userID uuid.UUID, weekStart string) *ProductivityWeek {
	w := &ProductivityWeek{
		UserID:      userID,
		WeekStart:   weekStart,
		WeekEnd:     AddDays(weekStart, 6),
		DailyScores: make(map[string]DayScore, 7),
	}
	for _, wd := range Weekdays {
		w.DailyScores[wd.String()] = DayScore{}
	}
	return w
}

// RecordCreated counts a task due on weekday.
func (w *ProductivityWeek) RecordCreated(weekday time.Weekday) {
	w.update(weekday, func(d *DayScore) { d.Total++ })
}

// RecordCompletion applies a completion toggle for a task due on weekday.
func (w *ProductivityWeek) RecordCompletion(weekday time.Weekday, completed bool) {
	w.update(weekday, func(d *DayScore) {
		if completed {
			d.Completed++
		} else {
			d.Completed = max(0, d.Completed-1)
		}
	})
}

func (w *ProductivityWeek) update(weekday time.Weekday, fn func(*DayScore)) {
	if w.DailyScores == nil {
		w.DailyScores = make(map[string]DayScore, 7)
	}
	d := w.DailyScores[weekday.String()]
	fn(&d)
	w.DailyScores[weekday.String()] = d
}

// Series returns Monday through Sunday with scores.
func (w *ProductivityWeek) Series() []DayPoint {
	out := make([]DayPoint, 0, 7)
	for _, wd := range Weekdays {
		d := w.DailyScores[wd.String()]
		out = append(out, DayPoint{
			Day:       wd.String(),
			Completed: d.Completed,
			Total:     d.Total,
			Score:     d.Score(),
		})
	}
	return out
}

// EmptySeries is the series for a week with no activity.
func EmptySeries() []DayPoint {
	return (&ProductivityWeek{}).Series()
}
