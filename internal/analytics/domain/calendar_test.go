package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKey_UsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ts := time.Date(2024, 3, 11, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-11", DayKey(ts, time.UTC))
	assert.Equal(t, "2024-03-10", DayKey(ts, ny))
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	n, err := DaysBetween("2024-03-09", "2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = DaysBetween("bad", "2024-03-11")
	assert.Error(t, err)
}

func TestWeekStarts(t *testing.T) {
	// Sunday 2024-06-16
	sunday := time.Date(2024, 6, 16, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-10", ISOWeekStart(sunday, time.UTC))
	assert.Equal(t, "2024-06-16", SundayWeekStart(sunday, time.UTC))

	wednesday := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-10", ISOWeekStart(wednesday, time.UTC))
	assert.Equal(t, "2024-06-09", SundayWeekStart(wednesday, time.UTC))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2024-03-01", AddDays("2024-02-28", 2))
	assert.Equal(t, "2023-12-31", AddDays("2024-01-01", -1))
}
