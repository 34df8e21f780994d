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

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Category    string
	DueDate     time.Time
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	Task *task.Task
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo  task.Repository
	uow       sharedApplication.UnitOfWork
	hooks     AnalyticsHooks
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, hooks AnalyticsHooks, publisher eventbus.Publisher, logger *slog.Logger) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:  taskRepo,
		uow:       uow,
		hooks:     hooks,
		publisher: orNoop(publisher),
		logger:    orDefault(logger),
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	t, err := task.NewTask(cmd.UserID, cmd.Title, cmd.Description, cmd.Category, cmd.DueDate, time.Now())
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.taskRepo.Save(txCtx, t)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, h.logger, cmd.UserID, t.DomainEvents())
	t.ClearDomainEvents()
	h.hooks.OnCreate(ctx, cmd.UserID, t.Snapshot())

	return &CreateTaskResult{Task: t}, nil
}
