package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated = "tasks.task.created"
	RoutingKeyToggled = "tasks.task.toggled"
	RoutingKeyDeleted = "tasks.task.deleted"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title    string    `json:"title"`
	Category string    `json:"category"`
	DueDate  time.Time `json:"due_date"`
}

func NewTaskCreated(taskID uuid.UUID, title, category string, due, at time.Time) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated, at),
		Title:     title,
		Category:  category,
		DueDate:   due,
	}
}

// TaskToggled is emitted when a task is completed or reopened.
type TaskToggled struct {
	domain.BaseEvent
	Completed bool `json:"completed"`
}

func NewTaskToggled(taskID uuid.UUID, completed bool, at time.Time) *TaskToggled {
	return &TaskToggled{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyToggled, at),
		Completed: completed,
	}
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	domain.BaseEvent
}

func NewTaskDeleted(taskID uuid.UUID, at time.Time) *TaskDeleted {
	return &TaskDeleted{BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDeleted, at)}
}
