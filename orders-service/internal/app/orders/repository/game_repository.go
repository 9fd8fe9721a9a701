package repository

import (
	"context"
	"fmt"

	"gamestore/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	var game entity.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrGameNotFound)
	}
	return &game, nil
}

func (r *gameRepository) GetByKey(ctx context.Context, key string) (*entity.Game, error) {
	var game entity.Game
	if err := r.db.WithContext(ctx).First(&game, "key = ?", key).Error; err != nil {
		return nil, notFound(err, ErrGameNotFound)
	}
	return &game, nil
}

// DecrementStock условное списание: строка обновляется только при достаточном остатке
func (r *gameRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Game{}).
		Where("id = ? AND unit_in_stock >= ?", id, quantity).
		UpdateColumn("unit_in_stock", gorm.Expr("unit_in_stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStockChanged
	}
	return nil
}
