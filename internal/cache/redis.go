package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const seenTTL = 30 * 24 * time.Hour

type Redis struct {
	client *redis.Client
}

// NewRedis parses redisURL, verifies connectivity and returns the cache.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Seen(ctx context.Context, key string) (bool, error) {
	_, err := r.client.Get(ctx, "seen:"+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *Redis) Mark(ctx context.Context, key string) error {
	return r.client.Set(ctx, "seen:"+key, "1", seenTTL).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
