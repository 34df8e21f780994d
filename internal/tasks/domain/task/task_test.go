package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func newTestTask(t *testing.T) *Task {
	t.Helper()
	task, err := NewTask(uuid.New(), "Write report", "", "Work", now.Add(24*time.Hour), now)
	require.NoError(t, err)
	return task
}

func TestNewTask(t *testing.T) {
	userID := uuid.New()
	due := now.Add(time.Hour)

	task, err := NewTask(userID, "  Write report  ", " draft ", " Work ", due, now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, userID, task.UserID())
	assert.Equal(t, "Write report", task.Title())
	assert.Equal(t, "draft", task.Description())
	assert.Equal(t, "Work", task.Category())
	assert.Equal(t, due, task.DueDate())
	assert.Equal(t, now, task.CreatedAt())
	assert.False(t, task.IsCompleted())
	assert.Nil(t, task.CompletedAt())

	require.Len(t, task.DomainEvents(), 1)
	assert.Equal(t, RoutingKeyCreated, task.DomainEvents()[0].RoutingKey())
}

func TestNewTask_Validation(t *testing.T) {
	due := now.Add(time.Hour)
	tests := []struct {
		name     string
		title    string
		category string
		due      time.Time
		want     error
	}{
		{"empty title", "  ", "Work", due, ErrEmptyTitle},
		{"empty category", "x", "", due, ErrInvalidCategory},
		{"missing due date", "x", "Work", time.Time{}, ErrMissingDueDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(uuid.New(), tt.title, "", tt.category, tt.due, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTask_Toggle(t *testing.T) {
	task := newTestTask(t)
	task.ClearDomainEvents()

	later := now.Add(2 * time.Hour)
	assert.True(t, task.Toggle(later))
	require.NotNil(t, task.CompletedAt())
	assert.Equal(t, later, *task.CompletedAt())
	assert.Equal(t, later, task.UpdatedAt())

	assert.False(t, task.Toggle(later.Add(time.Minute)))
	assert.Nil(t, task.CompletedAt())

	events := task.DomainEvents()
	require.Len(t, events, 2)
	assert.True(t, events[0].(*TaskToggled).Completed)
	assert.False(t, events[1].(*TaskToggled).Completed)
}

func TestTask_CompleteIsIdempotent(t *testing.T) {
	task := newTestTask(t)
	task.Complete(now)
	first := task.CompletedAt()
	task.Complete(now.Add(time.Hour))

	assert.Equal(t, first, task.CompletedAt())
	task.Uncomplete(now)
	task.Uncomplete(now)
	assert.False(t, task.IsCompleted())
}

func TestTask_IsOverdue(t *testing.T) {
	task := newTestTask(t)
	assert.False(t, task.IsOverdue(now))
	assert.True(t, task.IsOverdue(now.Add(48*time.Hour)))

	task.Complete(now)
	assert.False(t, task.IsOverdue(now.Add(48*time.Hour)))
}

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	due, err := ParseDue("2024-06-12", "18:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 12, 16, 30, 0, 0, time.UTC), due.UTC())

	_, err = ParseDue("2024-06-12", "", loc)
	assert.ErrorIs(t, err, ErrMissingDueDate)

	_, err = ParseDue("12/06/2024", "18:30", loc)
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	_, err = ParseDue("2024-06-12", "25:00", loc)
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}
