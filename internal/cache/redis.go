package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
)

// RedisCache stores triage results in Redis so multiple server instances
// share one cache.
type RedisCache struct {
	logger     *logrus.Logger
	redis      *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache connects to the Redis instance named by config.RedisURL and
// verifies the connection before returning.
func NewRedisCache(logger *logrus.Logger, config domain.CacheConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.PoolSize
	opts.PoolTimeout = config.PoolTimeout
	opts.MaxRetries = config.MaxRetries

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		logger:     logger,
		redis:      client,
		defaultTTL: config.DefaultTTL,
	}, nil
}

// Get retrieves the cached result for key. Corrupted entries are removed
// and reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*domain.TriageResult, bool) {
	val, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).WithField("cache_key", key).Warn("Redis cache read failed")
		return nil, false
	}

	var result domain.TriageResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		c.redis.Del(ctx, key)
		return nil, false
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key": key,
		"backend":   "redis",
	}).Debug("Triage cache hit")

	return &result, true
}

// Set stores a result under key with the configured TTL. Failures are
// logged; a broken cache never blocks triage.
func (c *RedisCache) Set(ctx context.Context, key string, result *domain.TriageResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to marshal triage result for cache")
		return
	}

	if err := c.redis.Set(ctx, key, data, c.defaultTTL).Err(); err != nil {
		c.logger.WithError(err).WithField("cache_key", key).Warn("Redis cache write failed")
	}
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.redis.Close()
}
