// README: Search result cache backed by Redis string keys with TTL.
package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wayfarer:search:%s:%s"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// Get decodes the cached value for key into dest and reports whether it was present.
func (s *Store) Get(ctx context.Context, namespace, key string, dest any) (bool, error) {
	val, err := s.redis.Get(ctx, cacheKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", namespace, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, namespace, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	return s.redis.Set(ctx, cacheKey(namespace, key), b, s.ttl).Err()
}

// Key normalises query parts into a stable cache key.
func Key(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(norm, "|")
}

func cacheKey(namespace, key string) string {
	return fmt.Sprintf(keyPrefix, namespace, key)
}
