package entity

import (
	"time"

	"github.com/google/uuid"
)

// Game - строка таблицы games каталога; воркер трогает только comment_count
type Game struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Key          string    `json:"key" gorm:"size:255;not null;uniqueIndex"`
	CommentCount int64     `json:"comment_count" gorm:"not null;default:0"`
}

func (Game) TableName() string {
	return "games"
}

// CommentEvent событие из топика comment_events
type CommentEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"` // COMMENT_CREATED, COMMENT_DELETED
	CommentID string    `json:"comment_id"`
	GameKey   string    `json:"game_key"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventTypeCommentCreated = "COMMENT_CREATED"
	EventTypeCommentDeleted = "COMMENT_DELETED"
)

// GameCommentCount результат агрегации комментариев по игре
type GameCommentCount struct {
	GameKey string `bson:"_id"`
	Count   int64  `bson:"count"`
}

// Источники обновления счетчика для метрик
const (
	SourceEvent     = "event"
	SourceReconcile = "reconcile"
)

const RedisKeyPrefixEvent = "comment_events:processed:"

func GetRedisKeyForEvent(eventID string) string {
	return RedisKeyPrefixEvent + eventID
}
