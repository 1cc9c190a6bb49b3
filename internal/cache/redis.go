package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/giza-dash/pkg/config"
	"github.com/giza-dash/pkg/models"
)

// RedisStore is a Redis-backed Store for deployments where several dashboard
// instances share one cache. Values are JSON blobs under the same keys the
// memory store uses; expiry is delegated to Redis TTLs.
type RedisStore struct {
	client *redis.Client
	logger *logrus.Entry
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg *config.RedisConfig, addr string, logger *logrus.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		logger: logger.WithField("component", "redis-cache"),
	}, nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStore) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// GetMetrics returns a cached metrics snapshot, if present and fresh
func (s *RedisStore) GetMetrics(ctx context.Context, key string) (*models.TokenMetrics, bool, error) {
	var m models.TokenMetrics
	found, err := s.getJSON(ctx, key, &m)
	if err != nil || !found {
		return nil, false, err
	}
	return &m, true, nil
}

// SetMetrics stores a metrics snapshot with its TTL
func (s *RedisStore) SetMetrics(ctx context.Context, key string, m *models.TokenMetrics, ttl time.Duration) error {
	return s.setJSON(ctx, key, m, ttl)
}

// GetHistory returns a cached price series, if present and fresh
func (s *RedisStore) GetHistory(ctx context.Context, key string) ([]models.PricePoint, bool, error) {
	var points []models.PricePoint
	found, err := s.getJSON(ctx, key, &points)
	if err != nil || !found {
		return nil, false, err
	}
	return points, true, nil
}

// SetHistory stores a price series with its TTL
func (s *RedisStore) SetHistory(ctx context.Context, key string, points []models.PricePoint, ttl time.Duration) error {
	return s.setJSON(ctx, key, points, ttl)
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
