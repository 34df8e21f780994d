package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultConsumerQueue is the durable queue the worker consumes from.
const DefaultConsumerQueue = "chronosync.worker"

// RabbitMQConsumerConfig configures the RabbitMQ consumer.
type RabbitMQConsumerConfig struct {
	URL      string
	Queue    string
	Exchange string
	Logger   *slog.Logger
}

// RabbitMQConsumer delivers messages from a durable queue to handlers.
// A message whose handler fails is requeued once and dropped on the
// second failure.
type RabbitMQConsumer struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	queue    string
	exchange string
	handlers []Handler
	logger   *slog.Logger
	running  bool
}

// NewRabbitMQConsumer dials the broker and declares the exchange and queue.
func NewRabbitMQConsumer(cfg RabbitMQConsumerConfig) (*RabbitMQConsumer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Queue == "" {
		cfg.Queue = DefaultConsumerQueue
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.Queue, err)
	}

	cfg.Logger.Info("rabbitmq consumer connected", "queue", cfg.Queue, "exchange", cfg.Exchange)
	return &RabbitMQConsumer{
		conn:     conn,
		channel:  ch,
		queue:    cfg.Queue,
		exchange: cfg.Exchange,
		logger:   cfg.Logger,
	}, nil
}

// Subscribe registers h and binds the queue to each of its topics.
func (c *RabbitMQConsumer) Subscribe(h Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, topic := range h.Topics() {
		if err := c.channel.QueueBind(c.queue, topic, c.exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", c.queue, topic, err)
		}
		c.logger.Debug("queue bound", "queue", c.queue, "routing_key", topic)
	}
	c.handlers = append(c.handlers, h)
	return nil
}

// Start consumes until ctx is canceled or the delivery channel closes.
func (c *RabbitMQConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("consumer already running")
	}
	c.running = true
	c.mu.Unlock()

	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.logger.Info("started consuming events", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.deliver(ctx, msg)
		}
	}
}

func (c *RabbitMQConsumer) deliver(ctx context.Context, msg amqp.Delivery) {
	start := time.Now()
	err := c.dispatch(ctx, msg.RoutingKey, msg.Body)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.ErrorContext(ctx, "ack failed", "error", ackErr)
		}
		c.logger.DebugContext(ctx, "event processed", "routing_key", msg.RoutingKey, "duration_ms", time.Since(start).Milliseconds())
		return
	}

	requeue := !msg.Redelivered
	c.logger.ErrorContext(ctx, "event processing failed",
		"routing_key", msg.RoutingKey,
		"requeue", requeue,
		"error", err,
	)
	if nackErr := msg.Nack(false, requeue); nackErr != nil {
		c.logger.ErrorContext(ctx, "nack failed", "error", nackErr)
	}
}

// dispatch decodes the envelope and runs every matching handler. Undecodable
// bodies are logged and acknowledged.
func (c *RabbitMQConsumer) dispatch(ctx context.Context, routingKey string, body []byte) error {
	event := &Event{}
	if err := json.Unmarshal(body, event); err != nil {
		c.logger.ErrorContext(ctx, "undecodable event", "routing_key", routingKey, "error", err)
		return nil
	}
	event.Body = body
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	c.mu.Lock()
	handlers := append([]Handler(nil), c.handlers...)
	c.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if !handles(h, event.RoutingKey) {
			continue
		}
		if err := h.Handle(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes the channel and connection.
func (c *RabbitMQConsumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("close channel", "error", err)
		}
	}
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func handles(h Handler, routingKey string) bool {
	for _, topic := range h.Topics() {
		if matchTopic(topic, routingKey) {
			return true
		}
	}
	return false
}
