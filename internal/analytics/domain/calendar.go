// Package domain contains the analytics ledgers that are maintained
// incrementally from task lifecycle events.
package domain

import (
	"math"
	"time"
)

// DayLayout is the format of calendar day keys. Keys compare correctly as strings.
const DayLayout = "2006-01-02"

// Weekdays lists weekday names in Monday-first order.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DayKey returns the calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a day key as midnight UTC.
func ParseDay(key string) (time.Time, error) {
	return time.Parse(DayLayout, key)
}

// AddDays shifts a day key by n calendar days.
func AddDays(key string, n int) string {
	d, err := ParseDay(key)
	if err != nil {
		return key
	}
	return d.AddDate(0, 0, n).Format(DayLayout)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b string) (int, error) {
	da, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	db, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(math.Round(db.Sub(da).Hours() / 24)), nil
}

// WeekdayOf returns the weekday of a day key.
func WeekdayOf(key string) (time.Weekday, error) {
	d, err := ParseDay(key)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ISOWeekStart returns the Monday that starts the ISO week containing t.
func ISOWeekStart(t time.Time, loc *time.Location) string {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset).Format(DayLayout)
}

// SundayWeekStart returns the Sunday that starts the calendar week containing t.
func SundayWeekStart(t time.Time, loc *time.Location) string {
	day := StartOfDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday())).Format(DayLayout)
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
