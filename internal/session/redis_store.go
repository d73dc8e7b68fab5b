package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps values in Redis under the "session:" prefix. A zero ttl
// keeps values until they are deleted.
type RedisStore struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(cache *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

// Get fetches key, returning ErrNotFound when it is absent or expired.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.cache.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

// Set writes key, refreshing its ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.cache.Set(ctx, redisKeyPrefix+key, value, s.ttl).Err()
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.cache.Del(ctx, redisKeyPrefix+key).Err()
}
