package cache

import (
	"context"
	"fmt"
	"time"

	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects a redis client and verifies it with a ping.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Redis ping failed")
		return client, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// SuggestionCache is the redis-backed implementation of the generic TTL
// cache. It knows nothing about keys or payloads.
type SuggestionCache struct {
	client *redis.Client
}

func NewSuggestionCache(client *redis.Client) repository.ISuggestionCache {
	return &SuggestionCache{client: client}
}

func (c *SuggestionCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *SuggestionCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *SuggestionCache) Forget(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *SuggestionCache) Remember(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	b, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	b, err = producer(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, key, b, ttl); err != nil {
		return nil, err
	}
	return b, nil
}
