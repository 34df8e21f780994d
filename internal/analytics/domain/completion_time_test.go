package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionTimeRecord(t *testing.T) {
	created := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	done := created.Add(90 * time.Minute)
	task := TaskSnapshot{ID: uuid.New(), UserID: uuid.New(), Title: "Write report", CreatedAt: created, CompletedAt: &done}

	rec, ok := NewCompletionTimeRecord(task, done)
	require.True(t, ok)
	assert.InDelta(t, 1.5, rec.Hours, 1e-9)
	assert.Equal(t, task.ID, rec.TaskID)
	assert.Equal(t, "Write report", rec.TaskTitle)
}

func TestNewCompletionTimeRecord_Skips(t *testing.T) {
	created := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	before := created.Add(-time.Minute)

	_, ok := NewCompletionTimeRecord(TaskSnapshot{CreatedAt: created, CompletedAt: &created}, created)
	assert.False(t, ok, "zero latency")
	_, ok = NewCompletionTimeRecord(TaskSnapshot{CreatedAt: created, CompletedAt: &before}, created)
	assert.False(t, ok, "negative latency")
	_, ok = NewCompletionTimeRecord(TaskSnapshot{CreatedAt: created}, created)
	assert.False(t, ok, "not completed")
}

func TestAverageHours(t *testing.T) {
	assert.Equal(t, 0.0, AverageHours(nil))
	assert.Equal(t, 2.3, AverageHours([]*CompletionTimeRecord{{Hours: 1.0}, {Hours: 3.6}}))
}
