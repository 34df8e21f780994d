// Package docstore is a minimal keyed JSON document store with Mongo, Redis
// and in-memory backends. Documents live in named collections and are
// addressed by string keys.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no document has the key.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("docstore: backend unavailable")
)

// Entry is a stored document with its key.
type Entry struct {
	Key   string
	Value []byte
}

// Store persists JSON documents.
type Store interface {
	// Get returns the document stored under key or ErrNotFound.
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// Put creates or replaces the document under key.
	Put(ctx context.Context, collection, key string, doc []byte) error
	// PutIfAbsent stores doc only when key is free and reports whether it did.
	PutIfAbsent(ctx context.Context, collection, key string, doc []byte) (bool, error)
	// Scan returns every document whose key starts with prefix, ordered by key.
	Scan(ctx context.Context, collection, prefix string) ([]Entry, error)
	Close(ctx context.Context) error
}

// Backend names accepted by ANALYTICS_STORE.
const (
	BackendSQL   = "sql"
	BackendMongo = "mongo"
	BackendRedis = "redis"
)
