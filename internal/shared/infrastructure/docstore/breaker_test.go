package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	*MemoryStore
	err   error
	calls int
}

func (f *flakyStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.MemoryStore.Get(ctx, collection, key)
}

func TestBreakerStore_Contract(t *testing.T) {
	runStoreContract(t, NewBreakerStore(NewMemoryStore(), BreakerConfig{}, nil), "docs")
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{MemoryStore: NewMemoryStore(), err: errors.New("connection refused")}
	s := NewBreakerStore(inner, BreakerConfig{Name: "test", FailureThreshold: 2, Timeout: time.Minute}, nil)

	for range 2 {
		_, err := s.Get(ctx, "c", "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, s.State())

	_, err := s.Get(ctx, "c", "k")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, inner.calls, "open breaker must not reach the backend")
}

func TestBreakerStore_NotFoundIsNotAFailure(t *testing.T) {
	ctx := context.Background()
	s := NewBreakerStore(NewMemoryStore(), BreakerConfig{FailureThreshold: 1}, nil)

	for range 3 {
		_, err := s.Get(ctx, "c", "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, s.State())
}
