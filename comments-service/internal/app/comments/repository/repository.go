package repository

import (
	"context"

	"gamestore/comments-service/internal/app/comments/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentRepository комментарии в MongoDB
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// GetByID id не в формате ObjectID считается отсутствующим комментарием
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// GetByGameKey все комментарии игры в порядке создания
	GetByGameKey(ctx context.Context, gameKey string) ([]entity.Comment, error)
	UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error
	EnsureIndexes(ctx context.Context) error
}
