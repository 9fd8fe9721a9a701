package mocks

import (
	"context"

	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/orders-service/internal/app/orders/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository мок для OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByStatuses(ctx context.Context, statuses ...entity.OrderStatus) ([]entity.Order, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

// MockOrderGameRepository мок для OrderGameRepository
type MockOrderGameRepository struct {
	mock.Mock
}

func (m *MockOrderGameRepository) Create(ctx context.Context, line *entity.OrderGame) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockOrderGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderGame, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderGame), args.Error(1)
}

func (m *MockOrderGameRepository) GetByOrderAndGame(ctx context.Context, orderID, gameID uuid.UUID) (*entity.OrderGame, error) {
	args := m.Called(ctx, orderID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderGame), args.Error(1)
}

func (m *MockOrderGameRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockOrderGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGameRepository мок для GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepository) GetByKey(ctx context.Context, key string) (*entity.Game, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// MockUnitOfWork выполняет fn сразу с переданными моками, без транзакции
type MockUnitOfWork struct {
	Repos repository.Repositories
	Calls int
}

func (u *MockUnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	u.Calls++
	return fn(u.Repos)
}

// MockLegacyOrderRepository мок для LegacyOrderRepository
type MockLegacyOrderRepository struct {
	mock.Mock
}

func (m *MockLegacyOrderRepository) GetByID(ctx context.Context, id string) (*entity.LegacyOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LegacyOrder), args.Error(1)
}

func (m *MockLegacyOrderRepository) GetAll(ctx context.Context) ([]entity.LegacyOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LegacyOrder), args.Error(1)
}
