package application

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/analytics/infrastructure/persistence"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/docstore"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
)

// wednesday is 2024-06-12 10:00 UTC.
var wednesday = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// fakeTasks is an in-memory task store.
type fakeTasks struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]domain.TaskSnapshot
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: make(map[uuid.UUID]domain.TaskSnapshot)}
}

func (f *fakeTasks) put(t domain.TaskSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = t
}

func (f *fakeTasks) get(id uuid.UUID) domain.TaskSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tasks[id]
}

func (f *fakeTasks) remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
}

func (f *fakeTasks) filter(userID uuid.UUID, keep func(domain.TaskSnapshot) bool) []domain.TaskSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TaskSnapshot
	for _, t := range f.tasks {
		if t.UserID == userID && keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (f *fakeTasks) CountOverdue(_ context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return len(f.filter(userID, func(t domain.TaskSnapshot) bool { return t.IsOverdue(now) })), nil
}

func (f *fakeTasks) CompletedDates(_ context.Context, userID uuid.UUID) ([]time.Time, error) {
	var out []time.Time
	for _, t := range f.filter(userID, func(t domain.TaskSnapshot) bool { return t.Completed && t.CompletedAt != nil }) {
		out = append(out, *t.CompletedAt)
	}
	return out, nil
}

func (f *fakeTasks) CountOngoingBetween(_ context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	return len(f.filter(userID, func(t domain.TaskSnapshot) bool {
		return !t.Completed && (within(t.CreatedAt, from, to) || within(t.DueDate, from, to))
	})), nil
}

func (f *fakeTasks) ListCreatedBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]domain.TaskSnapshot, error) {
	return f.filter(userID, func(t domain.TaskSnapshot) bool { return within(t.CreatedAt, from, to) }), nil
}

func (f *fakeTasks) ListAll(_ context.Context, userID uuid.UUID) ([]domain.TaskSnapshot, error) {
	return f.filter(userID, func(domain.TaskSnapshot) bool { return true }), nil
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []*eventbus.Event
}

func (r *recorder) Topics() []string { return []string{"analytics.#"} }

func (r *recorder) Handle(_ context.Context, e *eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.RoutingKey)
	}
	return out
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	engine *Engine
	repos  domain.Repositories
	tasks  *fakeTasks
	clock  *fakeClock
	events *recorder
	inproc *eventbus.InProcessBus
	logs   *bytes.Buffer
	userID uuid.UUID
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, persistence.NewDocRepositories(docstore.NewMemoryStore()))
}

func newHarnessWith(t *testing.T, repos domain.Repositories) *harness {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	clock := &fakeClock{now: wednesday}
	bus := eventbus.NewInProcessBus(logger)
	events := &recorder{}
	bus.Subscribe(events)

	tasks := newFakeTasks()
	return &harness{
		t:      t,
		ctx:    context.Background(),
		engine: NewEngine(repos, tasks, logger, WithClock(clock.Now), WithLocation(time.UTC), WithPublisher(bus)),
		repos:  repos,
		tasks:  tasks,
		clock:  clock,
		events: events,
		inproc: bus,
		logs:   logs,
		userID: uuid.New(),
	}
}

func (h *harness) bus() *eventbus.InProcessBus { return h.inproc }

func (h *harness) create(title, category string, due time.Time) domain.TaskSnapshot {
	task := domain.TaskSnapshot{
		ID:        uuid.New(),
		UserID:    h.userID,
		Title:     title,
		Category:  category,
		DueDate:   due,
		CreatedAt: h.clock.Now(),
	}
	h.tasks.put(task)
	h.engine.OnCreate(h.ctx, h.userID, task)
	return task
}

func (h *harness) toggle(id uuid.UUID) *domain.EarnedBadge {
	task := h.tasks.get(id)
	task.Completed = !task.Completed
	if task.Completed {
		now := h.clock.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	h.tasks.put(task)
	return h.engine.OnToggle(h.ctx, h.userID, task, task.Completed)
}

func (h *harness) remove(id uuid.UUID) {
	h.engine.OnDelete(h.ctx, h.userID, h.tasks.get(id))
	h.tasks.remove(id)
}

func (h *harness) stats() *domain.StatsLedger {
	l, err := h.repos.Stats.GetOrCreate(h.ctx, h.userID)
	require.NoError(h.t, err)
	return l
}

func (h *harness) streak() *domain.CompletionStreak {
	s, err := h.repos.Streaks.GetOrCreate(h.ctx, h.userID)
	require.NoError(h.t, err)
	return s
}

func (h *harness) badges() *domain.BadgeState {
	b, err := h.repos.Badges.GetOrCreate(h.ctx, h.userID)
	require.NoError(h.t, err)
	return b
}

// mockStatsRepository fails on demand.
type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.StatsLedger, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).(*domain.StatsLedger)
	return l, args.Error(1)
}

func (m *mockStatsRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.StatsLedger, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).(*domain.StatsLedger)
	return l, args.Error(1)
}

func (m *mockStatsRepository) Save(ctx context.Context, l *domain.StatsLedger) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockStatsRepository) ListAll(ctx context.Context) ([]*domain.StatsLedger, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]*domain.StatsLedger)
	return all, args.Error(1)
}
