package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/imsachin001/chronosync/internal/shared/application"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

// DeleteTaskCommand removes a task.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	hooks     AnalyticsHooks
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, hooks AnalyticsHooks, publisher eventbus.Publisher, logger *slog.Logger) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		hooks:     hooks,
		publisher: orNoop(publisher),
		logger:    orDefault(logger),
	}
}

// Handle runs the delete hook while the task still exists, then removes it.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if t.UserID() != cmd.UserID {
		return task.ErrTaskNotFound
	}

	h.hooks.OnDelete(ctx, cmd.UserID, t.Snapshot())

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.taskRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		return err
	}

	t.MarkDeleted(time.Now())
	publishEvents(ctx, h.publisher, h.logger, cmd.UserID, t.DomainEvents())
	return nil
}
