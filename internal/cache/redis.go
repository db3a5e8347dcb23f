// Package cache is the Redis connection shared by the Sleeper response cache
// and the appended-games stream.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

// RedisCache stores raw Sleeper API responses between sync runs.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache parses redisURL and fails unless the server answers a ping.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rc := NewFromClient(redis.NewClient(opt))

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := rc.HealthCheck(ctx); err != nil {
		rc.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rc, nil
}

// NewFromClient wraps an existing client
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client exposes the connection for stream publishing and consuming.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores value under key. A zero TTL keeps the key forever.
func (rc *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get returns the stored bytes, or ErrMiss when the key is absent.
func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}
