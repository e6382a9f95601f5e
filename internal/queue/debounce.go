package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Debouncer gates duplicate enqueues behind a short-lived Redis key.
type Debouncer interface {
	// TryAcquire returns true when the caller won the window and should
	// enqueue; callers arriving inside the TTL see false.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type redisDebouncer struct {
	client *redis.Client
}

func NewRedisDebouncer(client *redis.Client) Debouncer {
	return &redisDebouncer{client: client}
}

func (d *redisDebouncer) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	won, err := d.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", key, err)
	}
	return won, nil
}
