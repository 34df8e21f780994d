package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	DueDate     time.Time  `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Overdue     bool       `json:"overdue"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID   uuid.UUID
	Status   string // "all" (default), "pending", "completed", "overdue"
	Category string
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	now      func() time.Time
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, now: time.Now}
}

// Handle returns the user's tasks sorted by due date.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	now := h.now()
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		if query.Category != "" && t.Category() != query.Category {
			continue
		}
		if !matchesStatus(t, query.Status, now) {
			continue
		}
		out = append(out, toDTO(t, now))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func matchesStatus(t *task.Task, status string, now time.Time) bool {
	switch status {
	case "pending":
		return !t.IsCompleted()
	case "completed":
		return t.IsCompleted()
	case "overdue":
		return t.IsOverdue(now)
	default:
		return true
	}
}

func toDTO(t *task.Task, now time.Time) TaskDTO {
	return TaskDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Category:    t.Category(),
		DueDate:     t.DueDate(),
		Completed:   t.IsCompleted(),
		CompletedAt: t.CompletedAt(),
		Overdue:     t.IsOverdue(now),
		CreatedAt:   t.CreatedAt(),
	}
}

// ToDTO converts a single task for adapters that return one task.
func ToDTO(t *task.Task) TaskDTO {
	return toDTO(t, time.Now())
}
