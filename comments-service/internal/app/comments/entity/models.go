package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeletedCommentText текст, которым заменяется удаленный комментарий и его цитаты
const DeletedCommentText = "A comment/quote was deleted"

// Действия при ответе на комментарий
const (
	ActionReply = "reply" // перед текстом ставится имя автора родителя
	ActionQuote = "quote" // перед текстом ставится весь текст родителя
)

// Comment комментарий к игре. Ответы хранят только ParentID,
// дерево собирается при чтении.
type Comment struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"` // имя автора
	Body      string              `json:"body" bson:"body"`
	GameKey   string              `json:"game_key" bson:"game_key"`
	ParentID  *primitive.ObjectID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// Типы событий комментариев в Kafka
const (
	EventCommentCreated = "COMMENT_CREATED"
	EventCommentDeleted = "COMMENT_DELETED"
)

type CommentEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	CommentID string    `json:"comment_id"`
	GameKey   string    `json:"game_key"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}
