package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// CompletionStreak tracks consecutive days with at least one completion.
// CompletedDates only grows; uncompleting a task leaves it untouched.
type CompletionStreak struct {
	UserID            uuid.UUID `json:"userId"`
	CurrentStreak     int       `json:"currentStreak"`
	LongestStreak     int       `json:"longestStreak"`
	LastCompletedDate string    `json:"lastCompletedDate,omitempty"`
	CompletedDates    []string  `json:"completedDates"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewCompletionStreak(userID uuid.UUID) *CompletionStreak {
	return &CompletionStreak{UserID: userID, CompletedDates: []string{}}
}

// HasDate reports whether day is already recorded.
func (s *CompletionStreak) HasDate(day string) bool {
	for _, d := range s.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

// AddCompletion records a completion on day and recomputes the streak
// relative to today. It returns false when day was already recorded.
func (s *CompletionStreak) AddCompletion(day, today string) bool {
	if s.HasDate(day) {
		return false
	}
	s.CompletedDates = append(s.CompletedDates, day)
	sort.Strings(s.CompletedDates)
	s.LastCompletedDate = day
	s.Recompute(today)
	return true
}

// Recompute refreshes CurrentStreak and raises LongestStreak if needed.
func (s *CompletionStreak) Recompute(today string) {
	s.CurrentStreak = CurrentStreak(s.CompletedDates, today)
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
}

// CurrentStreak walks dates from newest to oldest starting at today. Each
// date continues the chain when it is at most one day before the cursor,
// which then moves to it.
func CurrentStreak(dates []string, today string) int {
	sorted := append([]string(nil), dates...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	streak := 0
	cursor := today
	for _, d := range sorted {
		diff, err := DaysBetween(d, cursor)
		if err != nil || diff > 1 {
			break
		}
		streak++
		cursor = d
	}
	return streak
}
