package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	sharedApplication "github.com/imsachin001/chronosync/internal/shared/application"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

// ToggleTaskCommand flips a task between open and completed.
type ToggleTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// ToggleTaskResult is the saved task and the badge the toggle earned, if any.
type ToggleTaskResult struct {
	Task             *task.Task
	NewlyEarnedBadge *analytics.EarnedBadge
}

// ToggleTaskHandler handles the ToggleTaskCommand.
type ToggleTaskHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	hooks     AnalyticsHooks
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewToggleTaskHandler creates a new ToggleTaskHandler.
func NewToggleTaskHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, hooks AnalyticsHooks, publisher eventbus.Publisher, logger *slog.Logger) *ToggleTaskHandler {
	return &ToggleTaskHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		hooks:     hooks,
		publisher: orNoop(publisher),
		logger:    orDefault(logger),
	}
}

// Handle executes the ToggleTaskCommand.
func (h *ToggleTaskHandler) Handle(ctx context.Context, cmd ToggleTaskCommand) (*ToggleTaskResult, error) {
	var t *task.Task
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if found.UserID() != cmd.UserID {
			return task.ErrTaskNotFound
		}
		found.Toggle(time.Now())
		if err := h.taskRepo.Save(txCtx, found); err != nil {
			return err
		}
		t = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, h.logger, cmd.UserID, t.DomainEvents())
	t.ClearDomainEvents()
	badge := h.hooks.OnToggle(ctx, cmd.UserID, t.Snapshot(), t.IsCompleted())

	return &ToggleTaskResult{Task: t, NewlyEarnedBadge: badge}, nil
}
