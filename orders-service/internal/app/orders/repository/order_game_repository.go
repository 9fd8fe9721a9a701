package repository

import (
	"context"
	"errors"
	"fmt"

	"gamestore/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type orderGameRepository struct {
	db *gorm.DB
}

func NewOrderGameRepository(db *gorm.DB) OrderGameRepository {
	return &orderGameRepository{db: db}
}

func (r *orderGameRepository) Create(ctx context.Context, line *entity.OrderGame) error {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create order game: %w", err)
	}
	return nil
}

func (r *orderGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderGame, error) {
	var line entity.OrderGame
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrOrderGameNotFound)
	}
	return &line, nil
}

func (r *orderGameRepository) GetByOrderAndGame(ctx context.Context, orderID, gameID uuid.UUID) (*entity.OrderGame, error) {
	var line entity.OrderGame
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND game_id = ?", orderID, gameID).
		First(&line).Error
	if err != nil {
		return nil, notFound(err, ErrOrderGameNotFound)
	}
	return &line, nil
}

func (r *orderGameRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&entity.OrderGame{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update order game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderGameNotFound
	}
	return nil
}

func (r *orderGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.OrderGame{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderGameNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
