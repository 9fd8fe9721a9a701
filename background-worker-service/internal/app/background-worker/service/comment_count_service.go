package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamestore/background-worker-service/internal/app/background-worker/entity"
	"gamestore/background-worker-service/internal/app/background-worker/repository"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"
)

// CommentCountService держит счетчик комментариев игр в каталоге.
// События дают быстрый инкремент, Reconcile исправляет пропуски и повторы.
type CommentCountService struct {
	gameRepo repository.GameRepository
	events   repository.EventDeduplicator
	source   repository.CommentCountSource
}

func NewCommentCountService(
	gameRepo repository.GameRepository,
	events repository.EventDeduplicator,
	source repository.CommentCountSource,
) *CommentCountService {
	return &CommentCountService{
		gameRepo: gameRepo,
		events:   events,
		source:   source,
	}
}

// ProcessCommentEvent обрабатывает COMMENT_CREATED ровно один раз на event id.
// Удаление не меняет счетчик: комментарий остается в дереве с заглушкой.
func (s *CommentCountService) ProcessCommentEvent(ctx context.Context, event *entity.CommentEvent) error {
	switch event.EventType {
	case entity.EventTypeCommentCreated:
		return s.processCommentCreated(ctx, event)
	case entity.EventTypeCommentDeleted:
		logger.Debug().Str("comment_id", event.CommentID).Msg("COMMENT_DELETED does not change comment count, skipping")
		metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceEvent, "skipped").Inc()
		return nil
	default:
		logger.Warn().Str("event_type", event.EventType).Str("comment_id", event.CommentID).Msg("Unknown event type")
		return nil
	}
}

func (s *CommentCountService) processCommentCreated(ctx context.Context, event *entity.CommentEvent) error {
	if event.EventID == "" || event.GameKey == "" {
		return fmt.Errorf("invalid comment event: event_id and game_key are required")
	}

	first, err := s.events.MarkProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if !first {
		logger.Info().Str("event_id", event.EventID).Msg("Duplicate comment event, skipping")
		metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceEvent, "skipped").Inc()
		return nil
	}

	if err := s.gameRepo.IncrementCommentCount(ctx, event.GameKey, 1); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			// игру удалили из каталога, повтор ничего не даст
			logger.Warn().Str("game_key", event.GameKey).Msg("Comment event for unknown game")
			metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceEvent, "skipped").Inc()
			return nil
		}

		if forgetErr := s.events.Forget(ctx, event.EventID); forgetErr != nil {
			logger.Error().Err(forgetErr).Str("event_id", event.EventID).Msg("Failed to release event marker")
		}
		metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceEvent, "failed").Inc()
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceEvent, "success").Inc()
	logger.Info().
		Str("game_key", event.GameKey).
		Str("comment_id", event.CommentID).
		Msg("Comment count incremented")
	return nil
}

func (s *CommentCountService) Reconcile(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.WorkerReconcileDuration.Observe(time.Since(start).Seconds())
	}()

	counts, err := s.source.CountByGame(ctx)
	if err != nil {
		metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceReconcile, "failed").Inc()
		return fmt.Errorf("failed to count comments: %w", err)
	}

	updated, err := s.gameRepo.SetCommentCounts(ctx, counts)
	if err != nil {
		metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceReconcile, "failed").Inc()
		return fmt.Errorf("failed to store comment counts: %w", err)
	}

	metrics.WorkerCommentCountUpdates.WithLabelValues(entity.SourceReconcile, "success").Add(float64(updated))
	logger.Info().
		Int("games_with_comments", len(counts)).
		Int64("updated", updated).
		Dur("duration", time.Since(start)).
		Msg("Comment counts reconciled")
	return nil
}
