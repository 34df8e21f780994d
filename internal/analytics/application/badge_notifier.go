package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/eventbus"
)

// BadgeNotifier logs BadgeEarned events delivered by either bus and
// passes them to an optional sink.
type BadgeNotifier struct {
	logger *slog.Logger
	sink   func(context.Context, domain.BadgeEarned)
}

func NewBadgeNotifier(logger *slog.Logger, sink func(context.Context, domain.BadgeEarned)) *BadgeNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgeNotifier{logger: logger, sink: sink}
}

func (n *BadgeNotifier) Topics() []string { return []string{domain.RoutingKeyBadgeEarned} }

func (n *BadgeNotifier) Handle(ctx context.Context, event *eventbus.Event) error {
	var earned domain.BadgeEarned
	if err := event.Decode(&earned); err != nil {
		return fmt.Errorf("decode badge earned: %w", err)
	}
	n.logger.InfoContext(ctx, "badge notification",
		"user_id", event.AggregateID,
		"badge", earned.Name,
		"emoji", earned.Emoji,
		"level", earned.Level,
		"type", earned.Type,
	)
	if n.sink != nil {
		n.sink(ctx, earned)
	}
	return nil
}
