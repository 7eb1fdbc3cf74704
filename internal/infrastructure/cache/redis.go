package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/crm-backend/pkg/config"
)

// RedisStore implements Store on top of a Redis client
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient creates and pings a Redis client
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRedisStore wraps a Redis client as a Store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set stores a key-value pair with expiration
func (rs *RedisStore) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return rs.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (rs *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := rs.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Delete removes a key
func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	return rs.client.Del(ctx, key).Err()
}
