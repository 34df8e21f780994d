package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/domain"
)

var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrInvalidCategory = errors.New("task category cannot be empty")
	ErrMissingDueDate  = errors.New("task due date is required")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD and due time HH:MM")
	ErrTaskNotFound    = errors.New("task not found")
)

const (
	dueDateLayout = "2006-01-02"
	dueTimeLayout = "15:04"
)

// Task is a user's to-do item.
type Task struct {
	domain.BaseAggregateRoot
	userID      uuid.UUID
	title       string
	description string
	category    string
	dueDate     time.Time
	completed   bool
	completedAt *time.Time
}

// NewTask creates an open task. Title, category and due date are required.
func NewTask(userID uuid.UUID, title, description, category string, due, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrInvalidCategory
	}
	if due.IsZero() {
		return nil, ErrMissingDueDate
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(now.UTC()),
		userID:            userID,
		title:             title,
		description:       strings.TrimSpace(description),
		category:          category,
		dueDate:           due.UTC(),
	}
	t.Record(NewTaskCreated(t.ID(), t.title, t.category, t.dueDate, now))
	return t, nil
}

// Rehydrate rebuilds a task from storage without recording events.
func Rehydrate(id, userID uuid.UUID, title, description, category string, due time.Time, completed bool, completedAt *time.Time, createdAt, updatedAt time.Time) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		title:             title,
		description:       description,
		category:          category,
		dueDate:           due,
		completed:         completed,
		completedAt:       completedAt,
	}
}

// ParseDue combines a YYYY-MM-DD date and an HH:MM time in loc.
func ParseDue(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, ErrMissingDueDate
	}
	t, err := time.ParseInLocation(dueDateLayout+" "+dueTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDueDate, date, clock)
	}
	return t, nil
}

func (t *Task) UserID() uuid.UUID       { return t.userID }
func (t *Task) Title() string           { return t.title }
func (t *Task) Description() string     { return t.description }
func (t *Task) Category() string        { return t.category }
func (t *Task) DueDate() time.Time      { return t.dueDate }
func (t *Task) IsCompleted() bool       { return t.completed }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }

// IsOverdue reports whether the task is open and past due.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.completed && t.dueDate.Before(now)
}

// Complete marks the task done at now. Completing a done task is a no-op.
func (t *Task) Complete(now time.Time) {
	if t.completed {
		return
	}
	at := now.UTC()
	t.completed = true
	t.completedAt = &at
	t.Touch(at)
	t.Record(NewTaskToggled(t.ID(), true, at))
}

// Uncomplete reopens the task and clears its completion time.
func (t *Task) Uncomplete(now time.Time) {
	if !t.completed {
		return
	}
	t.completed = false
	t.completedAt = nil
	t.Touch(now.UTC())
	t.Record(NewTaskToggled(t.ID(), false, now))
}

// Toggle flips completion and returns the new state.
func (t *Task) Toggle(now time.Time) bool {
	if t.completed {
		t.Uncomplete(now)
	} else {
		t.Complete(now)
	}
	return t.completed
}

// MarkDeleted records the deletion event. The repository removes the row.
func (t *Task) MarkDeleted(now time.Time) {
	t.Record(NewTaskDeleted(t.ID(), now))
}

// Snapshot is the view of the task the analytics hooks consume.
func (t *Task) Snapshot() analytics.TaskSnapshot {
	return analytics.TaskSnapshot{
		ID:          t.ID(),
		UserID:      t.userID,
		Title:       t.title,
		Category:    t.category,
		DueDate:     t.dueDate,
		CreatedAt:   t.CreatedAt(),
		CompletedAt: t.completedAt,
		Completed:   t.completed,
	}
}
