package service

import (
	"context"

	"gamestore/background-worker-service/internal/app/background-worker/entity"
)

// CommentCountServiceInterface поддержка games.comment_count
type CommentCountServiceInterface interface {
	// ProcessCommentEvent применяет событие из Kafka
	ProcessCommentEvent(ctx context.Context, event *entity.CommentEvent) error
	// Reconcile пересчитывает счетчики всех игр по MongoDB
	Reconcile(ctx context.Context) error
}
