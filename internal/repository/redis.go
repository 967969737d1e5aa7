package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"harustay/internal/config"
	"harustay/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository stores admin sessions and rate-limit counters in
// redis so they survive process restarts.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("admin_session:%s", session.Token)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session in redis: %w", err)
	}

	return nil
}

func (r *RedisSessionRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("admin_session:%s", token)
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *RedisSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("admin_session:%s", token)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	counterKey := fmt.Sprintf("rate_limit:%s", key)
	count, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, counterKey, window)
	}

	return count <= int64(limit), nil
}

// Ping verifies the redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close shuts down the redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
