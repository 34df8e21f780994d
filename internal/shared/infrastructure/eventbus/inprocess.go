package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// InProcessBus is a Publisher that hands events straight to registered
// handlers on the caller's goroutine. Handler failures are logged and never
// returned, so publishing cannot fail the operation that raised the event.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *slog.Logger
}

func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{logger: logger}
}

// Subscribe registers h for its topics.
func (b *InProcessBus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := &Event{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.ErrorContext(ctx, "undecodable event", "routing_key", routingKey, "error", err)
		return nil
	}
	event.Body = payload
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	for _, h := range b.matching(routingKey) {
		if err := h.Handle(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				"routing_key", routingKey,
				"event_id", event.EventID,
				"error", err,
			)
		}
	}
	return nil
}

func (b *InProcessBus) matching(routingKey string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Handler
	for _, h := range b.handlers {
		for _, topic := range h.Topics() {
			if matchTopic(topic, routingKey) {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

func (b *InProcessBus) Close() error { return nil }
