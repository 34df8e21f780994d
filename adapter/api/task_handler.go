package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

// TaskHandler handles task API requests.
type TaskHandler struct {
	create   *commands.CreateTaskHandler
	toggle   *commands.ToggleTaskHandler
	delete   *commands.DeleteTaskHandler
	list     *queries.ListTasksHandler
	location *time.Location
	logger   *slog.Logger
}

// TaskHandlerConfig holds dependencies for the task handler.
type TaskHandlerConfig struct {
	Create   *commands.CreateTaskHandler
	Toggle   *commands.ToggleTaskHandler
	Delete   *commands.DeleteTaskHandler
	List     *queries.ListTasksHandler
	Location *time.Location
	Logger   *slog.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(cfg TaskHandlerConfig) *TaskHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &TaskHandler{
		create:   cfg.Create,
		toggle:   cfg.Toggle,
		delete:   cfg.Delete,
		list:     cfg.List,
		location: cfg.Location,
		logger:   cfg.Logger,
	}
}

// CreateTaskRequest is the body of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
}

// ToggleTaskResponse is the body returned by PATCH /api/v1/tasks/{id}/toggle.
type ToggleTaskResponse struct {
	Task             queries.TaskDTO        `json:"task"`
	NewlyEarnedBadge *analytics.EarnedBadge `json:"newlyEarnedBadge"`
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request")
		return
	}

	due, err := task.ParseDue(req.Date, req.Time, h.location)
	if err != nil {
		h.writeTaskError(w, r, "create task", err)
		return
	}

	result, err := h.create.Handle(r.Context(), commands.CreateTaskCommand{
		UserID:      userFrom(r),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     due,
	})
	if err != nil {
		h.writeTaskError(w, r, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, queries.ToDTO(result.Task))
}

// List handles GET /api/v1/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.list.Handle(r.Context(), queries.ListTasksQuery{
		UserID:   userFrom(r),
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		h.writeTaskError(w, r, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Toggle handles PATCH /api/v1/tasks/{id}/toggle
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	result, err := h.toggle.Handle(r.Context(), commands.ToggleTaskCommand{TaskID: id, UserID: userFrom(r)})
	if err != nil {
		h.writeTaskError(w, r, "toggle task", err)
		return
	}

	writeJSON(w, http.StatusOK, ToggleTaskResponse{
		Task:             queries.ToDTO(result.Task),
		NewlyEarnedBadge: result.NewlyEarnedBadge,
	})
}

// Delete handles DELETE /api/v1/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.delete.Handle(r.Context(), commands.DeleteTaskCommand{TaskID: id, UserID: userFrom(r)}); err != nil {
		h.writeTaskError(w, r, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return uuid.Nil, false
	}
	return id, true
}

// writeTaskError maps domain errors onto HTTP statuses.
func (h *TaskHandler) writeTaskError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrInvalidCategory),
		errors.Is(err, task.ErrMissingDueDate),
		errors.Is(err, task.ErrInvalidDueDate):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "failed to "+op, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}
