package repository

import (
	"context"
	"errors"

	"gamestore/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderGameNotFound = errors.New("order game not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	// ErrStockChanged остаток изменился между проверкой и списанием
	ErrStockChanged = errors.New("stock changed concurrently")
	// ErrStatusChanged статус заказа изменился между чтением и записью
	ErrStatusChanged = errors.New("order status changed concurrently")
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID заказ со строками
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetOpenByCustomer открытый заказ покупателя со строками; при нескольких берется самый ранний
	GetOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Order, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error)
	GetByStatuses(ctx context.Context, statuses ...entity.OrderStatus) ([]entity.Order, error)
	// UpdateStatus меняет статус только если текущий равен from
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}

type OrderGameRepository interface {
	Create(ctx context.Context, line *entity.OrderGame) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderGame, error)
	GetByOrderAndGame(ctx context.Context, orderID, gameID uuid.UUID) (*entity.OrderGame, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GameRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	GetByKey(ctx context.Context, key string) (*entity.Game, error)
	// DecrementStock списывает остаток, не допуская ухода в минус
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// Repositories набор репозиториев, привязанных к одному соединению или транзакции
type Repositories struct {
	Orders     OrderRepository
	OrderGames OrderGameRepository
	Games      GameRepository
}

// UnitOfWork выполняет fn в транзакции: commit при nil, rollback при ошибке или панике
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// LegacyOrderRepository заказы старого магазина
type LegacyOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.LegacyOrder, error)
	GetAll(ctx context.Context) ([]entity.LegacyOrder, error)
}
