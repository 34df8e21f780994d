// Package eventbus publishes domain events to RabbitMQ or, in local mode,
// dispatches them synchronously to in-process handlers.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/imsachin001/chronosync/internal/shared/domain"
)

// Publisher sends a serialised event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// PublishEvent serialises a domain event and publishes it under its own routing key.
func PublishEvent(ctx context.Context, p Publisher, event domain.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.RoutingKey(), err)
	}
	return p.Publish(ctx, event.RoutingKey(), payload)
}

// NoopPublisher drops every event. It backs tests and setups without a broker.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.logger.DebugContext(ctx, "event dropped", "routing_key", routingKey, "size", len(payload))
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
