package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskSnapshot is the state of a task at the moment a lifecycle hook fires.
type TaskSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Category    string
	DueDate     time.Time
	CreatedAt   time.Time
	CompletedAt *time.Time
	Completed   bool
}

// IsOverdue reports whether the task is open and past its due date.
func (t TaskSnapshot) IsOverdue(now time.Time) bool {
	return !t.Completed && !t.DueDate.IsZero() && t.DueDate.Before(now)
}
