package service

import (
	"context"

	"gamestore/comments-service/internal/app/comments/entity"
	"gamestore/comments-service/internal/app/comments/moderation"
)

type CommentServiceInterface interface {
	AddComment(ctx context.Context, gameKey string, req *entity.AddCommentRequest) (*entity.Comment, error)
	GetAllCommentsByGameKey(ctx context.Context, gameKey string) ([]*entity.CommentNode, error)
	DeleteComment(ctx context.Context, id string) error
	BanUser(ctx context.Context, name, duration string) error
	BanDurations() []moderation.Duration
}

// BanChecker реестр банов
type BanChecker interface {
	IsBanned(name string) bool
	Ban(name string, d moderation.Duration) error
}
