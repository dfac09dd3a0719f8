package cache

import (
	"context"
	"fmt"
	"time"

	"inmofeed/pkg/logger"
	"inmofeed/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

// RedisBackend adapts a go-redis client to the Backend contract. It also
// implements PatternDeleter via SCAN, so operation-wide invalidation works
// without blocking the server the way KEYS would.
type RedisBackend struct {
	client *redis.Client
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewRedisBackend(cfg RedisConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := client.Ping(ctx).Result()
	metrics.CacheOperationDuration.WithLabelValues("ping").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("ping").Inc()
		logger.GlobalLogger.Errorf("failed to connect to Redis: %v", err)
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	logger.GlobalLogger.Println("Redis connected successfully")
	return &RedisBackend{client: client}, nil
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	val, err := r.client.Get(ctx, key).Bytes()
	metrics.CacheOperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
		return nil, false, NewCacheError("get", err, false)
	}
	return val, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := r.client.Set(ctx, key, value, ttl).Err()
	metrics.CacheOperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		return NewCacheError("set", err, false)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := r.client.Del(ctx, key).Err()
	metrics.CacheOperationDuration.WithLabelValues("delete").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("delete").Inc()
		return NewCacheError("delete", err, false)
	}
	return nil
}

// DeleteMatched removes every key matching the glob pattern, scanning in
// batches of 100.
func (r *RedisBackend) DeleteMatched(ctx context.Context, pattern string) error {
	start := time.Now()
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			metrics.CacheErrorsTotal.WithLabelValues("delete_matched").Inc()
			return NewCacheError("delete_matched", err, false)
		}
	}
	metrics.CacheOperationDuration.WithLabelValues("delete_matched").Observe(time.Since(start).Seconds())
	if err := iter.Err(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("delete_matched").Inc()
		return NewCacheError("delete_matched", err, false)
	}
	return nil
}

// Ping reports backend health for the /health endpoint.
func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBackend) Close() error {
	if err := r.client.Close(); err != nil {
		logger.GlobalLogger.Errorf("Error closing Redis: %v", err)
		return err
	}
	logger.GlobalLogger.Println("Redis connection closed")
	return nil
}
