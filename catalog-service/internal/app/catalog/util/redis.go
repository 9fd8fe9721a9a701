package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gamestore/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// Ключи кеша справочников
const (
	GenresCacheKey     = "genres:all"
	PlatformsCacheKey  = "platforms:all"
	PublishersCacheKey = "publishers:all"
)

const metricsService = "catalog-service"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromConn оборачивает уже созданное подключение (используется в тестах)
func NewRedisClientFromConn(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// Get читает JSON значение по ключу; false если ключа нет
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(metricsService, key)
			return false, nil
		}
		metrics.RecordRedisError(metricsService, "get")
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	metrics.RecordCacheHit(metricsService, key)
	return true, nil
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, "set")
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

func (r *RedisClient) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		metrics.RecordRedisError(metricsService, "del")
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
