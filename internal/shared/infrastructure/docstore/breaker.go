package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker guarding a remote store.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	Timeout          time.Duration
}

// BreakerStore fails fast with ErrUnavailable once the wrapped store has
// returned FailureThreshold consecutive errors. ErrNotFound is not a failure.
type BreakerStore struct {
	next    Store
	breaker *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(next Store, cfg BreakerConfig, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = "docstore"
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker state changed",
				"store", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}
	return &BreakerStore{next: next, breaker: gobreaker.NewCircuitBreaker[any](settings)}
}

// State reports the breaker state, mainly for diagnostics.
func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}

func (s *BreakerStore) run(fn func() (any, error)) (any, error) {
	res, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return res, err
}

func (s *BreakerStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	res, err := s.run(func() (any, error) { return s.next.Get(ctx, collection, key) })
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

func (s *BreakerStore) Put(ctx context.Context, collection, key string, doc []byte) error {
	_, err := s.run(func() (any, error) { return nil, s.next.Put(ctx, collection, key, doc) })
	return err
}

func (s *BreakerStore) PutIfAbsent(ctx context.Context, collection, key string, doc []byte) (bool, error) {
	res, err := s.run(func() (any, error) { return s.next.PutIfAbsent(ctx, collection, key, doc) })
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

func (s *BreakerStore) Scan(ctx context.Context, collection, prefix string) ([]Entry, error) {
	res, err := s.run(func() (any, error) { return s.next.Scan(ctx, collection, prefix) })
	if err != nil {
		return nil, err
	}
	return res.([]Entry), nil
}

func (s *BreakerStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
