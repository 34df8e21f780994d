// Package commands holds the task write operations. Each command commits the
// task first and then feeds the analytics hooks, so a ledger failure never
// rolls back a task change.
package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
	sharedApplication "github.com/imsachin001/chronosync/internal/shared/application"
	sharedDomain "github.com/imsachin001/chronosync/internal/shared/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
)

// AnalyticsHooks receives task lifecycle notifications.
type AnalyticsHooks interface {
	OnCreate(ctx context.Context, userID uuid.UUID, task analytics.TaskSnapshot)
	OnToggle(ctx context.Context, userID uuid.UUID, task analytics.TaskSnapshot, completed bool) *analytics.EarnedBadge
	OnDelete(ctx context.Context, userID uuid.UUID, task analytics.TaskSnapshot)
}

// publishEvents sends the aggregate's events after commit. Failures are
// logged; the task change already happened.
func publishEvents(ctx context.Context, p eventbus.Publisher, logger *slog.Logger, userID uuid.UUID, events []sharedDomain.DomainEvent) {
	sharedApplication.ApplyEventMetadata(events, sharedApplication.EventMetadataFromContext(ctx, userID))
	for _, event := range events {
		if err := eventbus.PublishEvent(ctx, p, event); err != nil {
			logger.WarnContext(ctx, "task event publish failed", "routing_key", event.RoutingKey(), "error", err)
		}
	}
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func orNoop(p eventbus.Publisher) eventbus.Publisher {
	if p == nil {
		return eventbus.NewNoopPublisher(nil)
	}
	return p
}
