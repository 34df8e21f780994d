package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(doc), nil
}

func (s *MemoryStore) Put(_ context.Context, collection, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bucket(collection)[key] = clone(doc)
	return nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, collection, key string, doc []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(collection)
	if _, ok := b[key]; ok {
		return false, nil
	}
	b[key] = clone(doc)
	return true, nil
}

func (s *MemoryStore) Scan(_ context.Context, collection, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for k, v := range s.data[collection] {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Entry{Key: k, Value: clone(v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func (s *MemoryStore) bucket(collection string) map[string][]byte {
	b, ok := s.data[collection]
	if !ok {
		b = make(map[string][]byte)
		s.data[collection] = b
	}
	return b
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
