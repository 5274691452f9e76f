// Package cache is the Redis-backed response cache: deterministic keys over
// normalized query parameters, JSON values, one fixed TTL, explicit
// invalidation for the per-user feed entries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TTL is the lifetime of every cache entry.
const TTL = 60 * time.Minute

// Store is the cache surface the services depend on. Redis implements it in
// production; tests use the in-memory fake below.
type Store interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// there was a hit. A backend failure counts as a miss, never an error:
	// the cache must not break reads.
	Get(ctx context.Context, key string, dest any) bool
	// Set stores a value under key for the fixed TTL, best effort.
	Set(ctx context.Context, key string, value any)
	// Delete evicts key. Unlike reads, eviction failures are surfaced: a
	// stale personalized feed after a preference write is a correctness bug.
	Delete(ctx context.Context, key string) error
}

type RedisCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisCache(rdb *redis.Client, log *zap.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, TTL).Err(); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// GetOrCompute serves key from the cache when possible; on a miss it runs
// compute, stores the result under key, and returns it.
func GetOrCompute[T any](ctx context.Context, c Store, key string, compute func() (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}
	value, err := compute()
	if err != nil {
		return value, err
	}
	c.Set(ctx, key, value)
	return value, nil
}
