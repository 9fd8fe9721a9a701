package repository

import (
	"context"
	"errors"
	"fmt"

	"gamestore/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderLines).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

func (r *orderRepository) GetOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderLines).
		Where("customer_id = ? AND status = ?", customerID, entity.OrderStatusOpen).
		Order("date ASC").
		First(&order).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

func (r *orderRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderLines).
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get customer orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) GetByStatuses(ctx context.Context, statuses ...entity.OrderStatus) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderLines).
		Where("status IN ?", statuses).
		Order("date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// orderLines стабильный порядок строк заказа
func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("order_games.id")
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
