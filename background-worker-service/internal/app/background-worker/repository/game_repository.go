package repository

import (
	"context"
	"fmt"

	"gamestore/background-worker-service/internal/app/background-worker/entity"
	"gamestore/pkg/metrics"

	"gorm.io/gorm"
)

const serviceName = "background-worker"

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// IncrementCommentCount атомарный инкремент на стороне БД, без чтения строки
func (r *gameRepository) IncrementCommentCount(ctx context.Context, gameKey string, delta int64) error {
	timer := metrics.NewDbTimer(serviceName, "update", "games")
	result := r.db.WithContext(ctx).
		Model(&entity.Game{}).
		Where("key = ?", gameKey).
		Update("comment_count", gorm.Expr("comment_count + ?", delta))
	timer.Done(result.Error)

	if result.Error != nil {
		return fmt.Errorf("failed to increment comment count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameKey)
	}
	return nil
}

func (r *gameRepository) SetCommentCounts(ctx context.Context, counts []entity.GameCommentCount) (int64, error) {
	var updated int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keys := make([]string, 0, len(counts))
		for _, c := range counts {
			keys = append(keys, c.GameKey)

			result := tx.Model(&entity.Game{}).
				Where("key = ? AND comment_count <> ?", c.GameKey, c.Count).
				Update("comment_count", c.Count)
			if result.Error != nil {
				return fmt.Errorf("failed to set comment count of %s: %w", c.GameKey, result.Error)
			}
			updated += result.RowsAffected
		}

		reset := tx.Model(&entity.Game{}).Where("comment_count <> 0")
		if len(keys) > 0 {
			reset = reset.Where("key NOT IN ?", keys)
		}
		result := reset.Update("comment_count", 0)
		if result.Error != nil {
			return fmt.Errorf("failed to reset comment counts: %w", result.Error)
		}
		updated += result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
