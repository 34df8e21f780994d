package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a string value under
// {namespace}:{collection}:{key}.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore wraps an existing client. An empty namespace defaults to "chronosync".
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "chronosync"
	}
	return &RedisStore{client: client, namespace: namespace}
}

// OpenRedis parses url, connects and pings the server.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, ""), nil
}

func (s *RedisStore) fullKey(collection, key string) string {
	return s.namespace + ":" + collection + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.fullKey(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s/%s: %w", collection, key, err)
	}
	return val, nil
}

func (s *RedisStore) Put(ctx context.Context, collection, key string, doc []byte) error {
	if err := s.client.Set(ctx, s.fullKey(collection, key), doc, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *RedisStore) PutIfAbsent(ctx context.Context, collection, key string, doc []byte) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.fullKey(collection, key), doc, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s/%s: %w", collection, key, err)
	}
	return ok, nil
}

func (s *RedisStore) Scan(ctx context.Context, collection, prefix string) ([]Entry, error) {
	base := s.fullKey(collection, "")
	pattern := escapeGlob(base+prefix) + "*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", collection, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget %s: %w", collection, err)
	}

	out := make([]Entry, 0, len(keys))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			// expired or deleted between SCAN and MGET
			continue
		}
		out = append(out, Entry{Key: strings.TrimPrefix(keys[i], base), Value: []byte(str)})
	}
	return out, nil
}

func (s *RedisStore) Close(context.Context) error {
	return s.client.Close()
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
