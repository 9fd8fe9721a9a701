package repository

import (
	"context"
	"errors"

	"gamestore/background-worker-service/internal/app/background-worker/entity"
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository счетчики комментариев в таблице games (PostgreSQL)
type GameRepository interface {
	// IncrementCommentCount увеличивает счетчик игры на delta
	IncrementCommentCount(ctx context.Context, gameKey string, delta int64) error

	// SetCommentCounts записывает пересчитанные значения в одной транзакции;
	// игры, которых нет в counts, получают 0. Возвращает число измененных строк.
	SetCommentCounts(ctx context.Context, counts []entity.GameCommentCount) (int64, error)
}

// EventDeduplicator отметки об обработанных событиях (Redis)
type EventDeduplicator interface {
	// MarkProcessed ставит отметку; false - событие уже обрабатывалось
	MarkProcessed(ctx context.Context, eventID string) (bool, error)

	// Forget снимает отметку, чтобы событие можно было обработать повторно
	Forget(ctx context.Context, eventID string) error
}

// CommentCountSource количество комментариев по играм (MongoDB Comments Service)
type CommentCountSource interface {
	CountByGame(ctx context.Context) ([]entity.GameCommentCount, error)
}
