// Package application runs the analytics ledgers: lifecycle hooks called by
// the task store, read-side views and maintenance routines.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
	sharedApp "github.com/imsachin001/chronosync/internal/shared/application"
	sharedDomain "github.com/imsachin001/chronosync/internal/shared/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
	"github.com/imsachin001/chronosync/pkg/observability"
)

// Engine keeps the analytics ledgers in step with task lifecycle events.
// Hooks never fail: every ledger update is best-effort and a failure is
// logged so the task mutation that triggered it still succeeds.
type Engine struct {
	repos     domain.Repositories
	tasks     domain.TaskSource
	publisher eventbus.Publisher
	logger    *slog.Logger
	now       func() time.Time
	loc       *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithPublisher sets where BadgeEarned and StreakUpdated events go.
func WithPublisher(p eventbus.Publisher) Option {
	return func(e *Engine) {
		if p != nil {
			e.publisher = p
		}
	}
}

// NewEngine creates an engine over the given ledger stores and task source.
func NewEngine(repos domain.Repositories, tasks domain.TaskSource, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		repos:  repos,
		tasks:  tasks,
		logger: logger.With("component", "analytics"),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.publisher == nil {
		e.publisher = eventbus.NewNoopPublisher(e.logger)
	}
	return e
}

// Location is the time zone calendar days are computed in.
func (e *Engine) Location() *time.Location { return e.loc }

func (e *Engine) today() string {
	return domain.DayKey(e.now(), e.loc)
}

// dayStart converts a day key to its first instant in the engine's zone.
func (e *Engine) dayStart(key string) time.Time {
	t, err := time.ParseInLocation(domain.DayLayout, key, e.loc)
	if err != nil {
		return domain.StartOfDay(e.now(), e.loc)
	}
	return t
}

func (e *Engine) fail(ctx context.Context, op string, userID uuid.UUID, err error) {
	e.logger.ErrorContext(ctx, "analytics update failed",
		observability.AttrOperation, op,
		observability.AttrUserID, userID,
		observability.AttrError, err,
	)
}

func (e *Engine) skip(ctx context.Context, op string, userID uuid.UUID, reason string) {
	e.logger.WarnContext(ctx, "analytics update skipped",
		observability.AttrOperation, op,
		observability.AttrUserID, userID,
		"reason", reason,
	)
}

func (e *Engine) publish(ctx context.Context, userID uuid.UUID, event sharedDomain.DomainEvent) {
	sharedApp.ApplyEventMetadata([]sharedDomain.DomainEvent{event}, sharedApp.EventMetadataFromContext(ctx, userID))
	if err := eventbus.PublishEvent(ctx, e.publisher, event); err != nil {
		e.logger.WarnContext(ctx, "event publish failed",
			"routing_key", event.RoutingKey(),
			observability.AttrError, err,
		)
	}
}

func isMissing(err error) bool {
	return errors.Is(err, domain.ErrLedgerNotFound)
}
