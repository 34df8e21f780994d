package eventbus

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imsachin001/chronosync/internal/shared/domain"
)

// Event is a published message as seen by a handler: the common envelope
// plus the raw body for handlers that decode the concrete payload.
type Event struct {
	EventID     uuid.UUID            `json:"event_id"`
	AggregateID uuid.UUID            `json:"aggregate_id"`
	RoutingKey  string               `json:"routing_key"`
	OccurredAt  time.Time            `json:"occurred_at"`
	Metadata    domain.EventMetadata `json:"metadata"`
	Body        json.RawMessage      `json:"-"`
}

// Decode unmarshals the raw body into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Body, v)
}

// Handler reacts to events whose routing key matches one of its topics.
// Topics use AMQP topic syntax: '*' matches one word, '#' zero or more.
type Handler interface {
	Topics() []string
	Handle(ctx context.Context, event *Event) error
}

func matchTopic(pattern, key string) bool {
	return matchWords(strings.Split(pattern, "."), strings.Split(key, "."))
}

func matchWords(pattern, key []string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case "#":
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(key); i++ {
				if matchWords(pattern[1:], key[i:]) {
					return true
				}
			}
			return false
		case "*":
			if len(key) == 0 {
				return false
			}
		default:
			if len(key) == 0 || key[0] != pattern[0] {
				return false
			}
		}
		pattern, key = pattern[1:], key[1:]
	}
	return len(key) == 0
}
