package infrastructure

import "context"

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// GameCatalog проверка существования игры в Catalog Service
type GameCatalog interface {
	GameExists(ctx context.Context, key string) (bool, error)
}
