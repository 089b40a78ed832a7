package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore remembers movement request ids so a retried request
// cannot apply the same movement twice.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    24 * time.Hour,
	}
}

// SetIdempotency claims the key. It returns false if the key was already
// claimed by an earlier request.
func (s *RedisIdempotencyStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, fmt.Sprintf("movement:idem:%s", key), 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check failed: %w", err)
	}
	return ok, nil
}
