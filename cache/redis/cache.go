// Package redis provides a Redis-backed implementation of cache.Cache,
// for deployments sharing one cache across instances.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/poiesic/placefinder/cache"
)

// Cache wraps a Redis client.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

var _ cache.Cache = (*Cache)(nil)

// Open connects to the Redis server at addr ("host:port") and verifies the
// connection with a ping.
func Open(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &Cache{
		client: client,
		logger: slog.Default().With("component", "redis_cache"),
	}, nil
}

// Get returns the value stored under key, or cache.ErrMiss if absent.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", cache.ErrMiss
		}
		return "", err
	}
	return value, nil
}

// SetEx stores value under key with the given time-to-live.
func (c *Cache) SetEx(ctx context.Context, key string, ttl time.Duration, value string) error {
	return c.client.SetEX(ctx, key, value, ttl).Err()
}

// Close closes the client connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
