package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/tasks/domain/task"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*task.Task)
	return t, args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	tasks, _ := args.Get(0).([]*task.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockHooks struct {
	mock.Mock
}

func (m *mockHooks) OnCreate(ctx context.Context, userID uuid.UUID, t analytics.TaskSnapshot) {
	m.Called(ctx, userID, t)
}

func (m *mockHooks) OnToggle(ctx context.Context, userID uuid.UUID, t analytics.TaskSnapshot, completed bool) *analytics.EarnedBadge {
	args := m.Called(ctx, userID, t, completed)
	b, _ := args.Get(0).(*analytics.EarnedBadge)
	return b
}

func (m *mockHooks) OnDelete(ctx context.Context, userID uuid.UUID, t analytics.TaskSnapshot) {
	m.Called(ctx, userID, t)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type txKey struct{}
