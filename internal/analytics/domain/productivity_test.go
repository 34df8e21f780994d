package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductivityWeek(t *testing.T) {
	w := NewProductivityWeek(uuid.New(), "2024-06-10")

	assert.Equal(t, "2024-06-16", w.WeekEnd)
	assert.Len(t, w.DailyScores, 7)
}

func TestProductivityWeek_WednesdayScenario(t *testing.T) {
	w := NewProductivityWeek(uuid.New(), "2024-06-10")

	w.RecordCreated(time.Wednesday)
	assert.Equal(t, 1, w.DailyScores["Wednesday"].Total)

	w.RecordCompletion(time.Wednesday, true)
	series := w.Series()
	require.Len(t, series, 7)
	assert.Equal(t, DayPoint{Day: "Wednesday", Completed: 1, Total: 1, Score: 100}, series[2])
}

func TestProductivityWeek_Series(t *testing.T) {
	w := NewProductivityWeek(uuid.New(), "2024-06-10")
	w.RecordCreated(time.Monday)
	w.RecordCreated(time.Monday)
	w.RecordCreated(time.Monday)
	w.RecordCompletion(time.Monday, true)
	w.RecordCompletion(time.Sunday, false)

	series := w.Series()
	assert.Equal(t, "Monday", series[0].Day)
	assert.Equal(t, 33, series[0].Score)
	assert.Equal(t, "Sunday", series[6].Day)
	assert.Equal(t, 0, series[6].Completed, "uncomplete is floored")
	for _, p := range series[1:] {
		assert.Equal(t, 0, p.Score, "empty day scores zero")
	}
}

func TestDayScore_Clamped(t *testing.T) {
	assert.Equal(t, 100, DayScore{Completed: 3, Total: 1}.Score())
	assert.Equal(t, 0, DayScore{Completed: 2}.Score())
	assert.Equal(t, 67, DayScore{Completed: 2, Total: 3}.Score())
}

func TestEmptySeries(t *testing.T) {
	s := EmptySeries()
	require.Len(t, s, 7)
	assert.Equal(t, "Monday", s[0].Day)
}
