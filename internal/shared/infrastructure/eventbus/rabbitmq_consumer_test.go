package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/imsachin001/chronosync/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsumer(handlers ...Handler) *RabbitMQConsumer {
	return &RabbitMQConsumer{
		queue:    DefaultConsumerQueue,
		exchange: DefaultExchange,
		handlers: handlers,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRabbitMQConsumer_Dispatch(t *testing.T) {
	badges := &recordingHandler{topics: []string{"analytics.badge.earned"}}
	streaks := &recordingHandler{topics: []string{"analytics.streak.*"}}
	c := newTestConsumer(badges, streaks)

	userID := uuid.New()
	evt := &levelUp{BaseEvent: domain.NewBaseEvent(userID, "BadgeState", "analytics.badge.earned", time.Now()), Level: 3}
	body, err := json.Marshal(evt)
	require.NoError(t, err)

	require.NoError(t, c.dispatch(context.Background(), "analytics.badge.earned", body))

	require.Len(t, badges.seen, 1)
	assert.Empty(t, streaks.seen)
	assert.Equal(t, userID, badges.seen[0].AggregateID)

	var decoded levelUp
	require.NoError(t, badges.seen[0].Decode(&decoded))
	assert.Equal(t, 3, decoded.Level)
}

func TestRabbitMQConsumer_DispatchFallsBackToDeliveryKey(t *testing.T) {
	h := &recordingHandler{topics: []string{"analytics.#"}}
	c := newTestConsumer(h)

	require.NoError(t, c.dispatch(context.Background(), "analytics.streak.updated", []byte(`{"event_id":"`+uuid.NewString()+`"}`)))

	require.Len(t, h.seen, 1)
	assert.Equal(t, "analytics.streak.updated", h.seen[0].RoutingKey)
}

func TestRabbitMQConsumer_DispatchJoinsHandlerErrors(t *testing.T) {
	first := &recordingHandler{topics: []string{"#"}, err: errors.New("first down")}
	second := &recordingHandler{topics: []string{"#"}, err: errors.New("second down")}
	c := newTestConsumer(first, second)

	err := c.dispatch(context.Background(), "a.b", []byte(`{"routing_key":"a.b"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first down")
	assert.Contains(t, err.Error(), "second down")
	assert.Len(t, second.seen, 1)
}

func TestRabbitMQConsumer_DispatchAcksUndecodable(t *testing.T) {
	h := &recordingHandler{topics: []string{"#"}}
	c := newTestConsumer(h)

	assert.NoError(t, c.dispatch(context.Background(), "a.b", []byte("not json")))
	assert.Empty(t, h.seen)
}

func TestNewRabbitMQConsumer_BadURL(t *testing.T) {
	_, err := NewRabbitMQConsumer(RabbitMQConsumerConfig{URL: "amqp://127.0.0.1:1/"})
	assert.Error(t, err)
}
