package repository

import (
	"context"
	"fmt"
	"time"

	"gamestore/background-worker-service/internal/app/background-worker/entity"
	"gamestore/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// eventRepository отметки обработанных событий в Redis с TTL
type eventRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventRepository(client *redis.Client, ttl time.Duration) EventDeduplicator {
	return &eventRepository{
		client: client,
		ttl:    ttl,
	}
}

// MarkProcessed SETNX: первый вызов для event id возвращает true
func (r *eventRepository) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, entity.GetRedisKeyForEvent(eventID), time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, "setnx")
		return false, fmt.Errorf("failed to mark event %s: %w", eventID, err)
	}
	return ok, nil
}

func (r *eventRepository) Forget(ctx context.Context, eventID string) error {
	if err := r.client.Del(ctx, entity.GetRedisKeyForEvent(eventID)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "del")
		return fmt.Errorf("failed to forget event %s: %w", eventID, err)
	}
	return nil
}
