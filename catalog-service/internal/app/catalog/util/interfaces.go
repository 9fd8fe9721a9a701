package util

import (
	"context"
	"time"
)

// ReferenceCache кеш справочников каталога (жанры, платформы, издатели)
// Используется для dependency injection и упрощения тестирования
type ReferenceCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	Close() error
}
