package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"innkeep/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
)

const idempotencyKeyPrefix = "idempotency:"

// RedisCommands is the subset of *redis.Client the store needs.
type RedisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisIdempotencyStore shares cached responses between replicas. Redis
// failures are logged and treated as cache misses so requests still go through.
type RedisIdempotencyStore struct {
	client RedisCommands
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisIdempotencyStore(client RedisCommands, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool) {
	raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("idempotency cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var cached CachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn("idempotency cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}
	return &cached, true
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) {
	response.CreatedAt = time.Now().UTC()

	raw, err := json.Marshal(response)
	if err != nil {
		s.log.Warn("idempotency cache entry could not be encoded", "key", key, "error", err)
		return
	}

	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("idempotency cache write failed", "key", key, "error", err)
	}
}

// Stop is a no-op; the Redis client is owned and closed by pkg/client.
func (s *RedisIdempotencyStore) Stop() {}
