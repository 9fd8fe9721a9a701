package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/orders-service/internal/app/orders/repository"
	"gamestore/orders-service/internal/app/orders/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentGateway мок для PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Pay(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentResult), args.Error(1)
}

type orderServiceDeps struct {
	orders     *mocks.MockOrderRepository
	orderGames *mocks.MockOrderGameRepository
	games      *mocks.MockGameRepository
	uow        *mocks.MockUnitOfWork
	payment    *MockPaymentGateway
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newOrderService() (*OrderService, orderServiceDeps) {
	deps := orderServiceDeps{
		orders:     new(mocks.MockOrderRepository),
		orderGames: new(mocks.MockOrderGameRepository),
		games:      new(mocks.MockGameRepository),
		payment:    new(MockPaymentGateway),
	}
	repos := repository.Repositories{Orders: deps.orders, OrderGames: deps.orderGames, Games: deps.games}
	deps.uow = &mocks.MockUnitOfWork{Repos: repos}

	svc := NewOrderService(repos, deps.uow, deps.payment, func() time.Time { return fixedNow })
	return svc, deps
}

// ===================== Cart =====================

func TestGetCart_CreatesOpenOrder(t *testing.T) {
	// Arrange
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()

	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(nil, repository.ErrOrderNotFound)
	deps.orders.On("Create", ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.CustomerID == customerID && o.Status == entity.OrderStatusOpen && o.Date.Equal(fixedNow)
	})).Return(nil)

	// Act
	cart, err := svc.GetCart(ctx, customerID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, cart.Status)
	assert.Empty(t, cart.Items)
	deps.orders.AssertExpectations(t)
}

func TestGetCart_ReturnsExisting(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	existing := &entity.Order{ID: uuid.New(), CustomerID: customerID, Status: entity.OrderStatusOpen}

	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(existing, nil)

	cart, err := svc.GetCart(ctx, customerID)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, cart.ID)
	deps.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetCartDetails_NoOpenOrder(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()

	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(nil, repository.ErrOrderNotFound)

	cart, err := svc.GetCartDetails(ctx, customerID)

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	deps.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddGameToCart_NewLineSnapshotsPrice(t *testing.T) {
	// Arrange
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	game := &entity.Game{ID: uuid.New(), Key: "witcher-3", Price: 19.99, Discount: 10, UnitInStock: 5}
	order := &entity.Order{ID: uuid.New(), CustomerID: customerID, Status: entity.OrderStatusOpen}

	deps.games.On("GetByKey", ctx, "witcher-3").Return(game, nil)
	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(order, nil)
	deps.orderGames.On("GetByOrderAndGame", ctx, order.ID, game.ID).Return(nil, repository.ErrOrderGameNotFound)
	deps.orderGames.On("Create", ctx, mock.MatchedBy(func(l *entity.OrderGame) bool {
		return l.Price == 19.99 && l.Discount == 10 && l.Quantity == 2 && l.OrderID == order.ID
	})).Return(nil)
	deps.games.On("DecrementStock", ctx, game.ID, 2).Return(nil)
	deps.orders.On("GetByID", ctx, order.ID).Return(order, nil)

	// Act
	result, err := svc.AddGameToCart(ctx, customerID, "witcher-3", 2)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.ID, result.ID)
	assert.Equal(t, 1, deps.uow.Calls)
	deps.orderGames.AssertExpectations(t)
	deps.games.AssertExpectations(t)
}

func TestAddGameToOrderByID_MergesExistingLine(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	game := &entity.Game{ID: uuid.New(), Price: 9.99, UnitInStock: 10}
	order := &entity.Order{ID: uuid.New(), CustomerID: customerID, Status: entity.OrderStatusOpen}
	line := &entity.OrderGame{ID: uuid.New(), OrderID: order.ID, GameID: game.ID, Quantity: 2}

	deps.games.On("GetByID", ctx, game.ID).Return(game, nil)
	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(order, nil)
	deps.orderGames.On("GetByOrderAndGame", ctx, order.ID, game.ID).Return(line, nil)
	deps.orderGames.On("UpdateQuantity", ctx, line.ID, 5).Return(nil)
	deps.games.On("DecrementStock", ctx, game.ID, 3).Return(nil)
	deps.orders.On("GetByID", ctx, order.ID).Return(order, nil)

	_, err := svc.AddGameToOrderByID(ctx, customerID, game.ID, 3)

	require.NoError(t, err)
	deps.orderGames.AssertExpectations(t)
	deps.orderGames.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddGame_InvalidQuantity(t *testing.T) {
	svc, deps := newOrderService()

	_, err := svc.AddGameToCart(context.Background(), uuid.New(), "witcher-3", 0)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 0, deps.uow.Calls)
}

func TestAddGame_InsufficientStock(t *testing.T) {
	tests := []struct {
		name    string
		add     func(svc *OrderService, deps orderServiceDeps, game *entity.Game) error
		wantErr error
	}{
		{
			name: "by key",
			add: func(svc *OrderService, deps orderServiceDeps, game *entity.Game) error {
				deps.games.On("GetByKey", mock.Anything, game.Key).Return(game, nil)
				_, err := svc.AddGameToCart(context.Background(), uuid.New(), game.Key, 2)
				return err
			},
			wantErr: ErrOutOfStock,
		},
		{
			name: "by id",
			add: func(svc *OrderService, deps orderServiceDeps, game *entity.Game) error {
				deps.games.On("GetByID", mock.Anything, game.ID).Return(game, nil)
				_, err := svc.AddGameToOrderByID(context.Background(), uuid.New(), game.ID, 2)
				return err
			},
			wantErr: ErrNotEnoughStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newOrderService()
			game := &entity.Game{ID: uuid.New(), Key: "witcher-3", UnitInStock: 1}

			err := tt.add(svc, deps, game)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInsufficientStock)
			deps.orders.AssertNotCalled(t, "GetOpenByCustomer", mock.Anything, mock.Anything)
			deps.games.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAddGame_StockChangedConcurrently(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	game := &entity.Game{ID: uuid.New(), Key: "witcher-3", UnitInStock: 3}
	order := &entity.Order{ID: uuid.New(), CustomerID: customerID, Status: entity.OrderStatusOpen}

	deps.games.On("GetByKey", ctx, game.Key).Return(game, nil)
	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(order, nil)
	deps.orderGames.On("GetByOrderAndGame", ctx, order.ID, game.ID).Return(nil, repository.ErrOrderGameNotFound)
	deps.orderGames.On("Create", ctx, mock.Anything).Return(nil)
	deps.games.On("DecrementStock", ctx, game.ID, 3).Return(repository.ErrStockChanged)

	_, err := svc.AddGameToCart(ctx, customerID, game.Key, 3)

	assert.ErrorIs(t, err, ErrOutOfStock)
	deps.orders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAddGame_GameNotFound(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()

	deps.games.On("GetByKey", ctx, "missing").Return(nil, repository.ErrGameNotFound)

	_, err := svc.AddGameToCart(ctx, uuid.New(), "missing", 1)

	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestRemoveGameFromCart_DeletesLine(t *testing.T) {
	// Arrange
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	game := &entity.Game{ID: uuid.New(), Key: "witcher-3"}
	order := &entity.Order{ID: uuid.New(), CustomerID: customerID}
	line := &entity.OrderGame{ID: uuid.New(), OrderID: order.ID, GameID: game.ID, Quantity: 3}

	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(order, nil)
	deps.games.On("GetByKey", ctx, game.Key).Return(game, nil)
	deps.orderGames.On("GetByOrderAndGame", ctx, order.ID, game.ID).Return(line, nil)
	deps.orderGames.On("Delete", ctx, line.ID).Return(nil)

	// Act
	err := svc.RemoveGameFromCart(ctx, customerID, game.Key)

	// Assert
	require.NoError(t, err)
	deps.orderGames.AssertExpectations(t)
	deps.games.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveGameFromCart_LineNotFound(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	game := &entity.Game{ID: uuid.New(), Key: "witcher-3"}
	order := &entity.Order{ID: uuid.New(), CustomerID: customerID}

	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(order, nil)
	deps.games.On("GetByKey", ctx, game.Key).Return(game, nil)
	deps.orderGames.On("GetByOrderAndGame", ctx, order.ID, game.ID).Return(nil, repository.ErrOrderGameNotFound)

	err := svc.RemoveGameFromCart(ctx, customerID, game.Key)

	assert.ErrorIs(t, err, ErrOrderGameNotFound)
}

func TestUpdateOrderGameQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  error
	}{
		{name: "positive", quantity: 4},
		{name: "zero keeps line", quantity: 0},
		{name: "negative", quantity: -1, wantErr: ErrNegativeQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newOrderService()
			ctx := context.Background()
			line := &entity.OrderGame{ID: uuid.New(), Quantity: 2}

			deps.orderGames.On("GetByID", ctx, line.ID).Return(line, nil)
			deps.orderGames.On("UpdateQuantity", ctx, line.ID, tt.quantity).Return(nil)

			updated, err := svc.UpdateOrderGameQuantity(ctx, line.ID, tt.quantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				deps.orderGames.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, updated.Quantity)
			deps.orderGames.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteOrderGame_NotFound(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	lineID := uuid.New()

	deps.orderGames.On("Delete", ctx, lineID).Return(repository.ErrOrderGameNotFound)

	err := svc.DeleteOrderGame(ctx, lineID)

	assert.ErrorIs(t, err, ErrOrderGameNotFound)
}

// ===================== Status =====================

func TestUpdateOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.OrderStatus
		to      entity.OrderStatus
		allowed bool
	}{
		{"open to paid", entity.OrderStatusOpen, entity.OrderStatusPaid, true},
		{"open to cancelled", entity.OrderStatusOpen, entity.OrderStatusCancelled, true},
		{"open to shipped", entity.OrderStatusOpen, entity.OrderStatusShipped, false},
		{"paid to cancelled", entity.OrderStatusPaid, entity.OrderStatusCancelled, false},
		{"paid to shipped", entity.OrderStatusPaid, entity.OrderStatusShipped, false},
		{"cancelled to open", entity.OrderStatusCancelled, entity.OrderStatusOpen, false},
		{"shipped to paid", entity.OrderStatusShipped, entity.OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newOrderService()
			ctx := context.Background()
			order := &entity.Order{ID: uuid.New(), Status: tt.from}

			deps.orders.On("GetByID", ctx, order.ID).Return(order, nil)
			deps.orders.On("UpdateStatus", ctx, order.ID, tt.from, tt.to).Return(nil)

			updated, err := svc.UpdateOrderStatus(ctx, order.ID, tt.to)

			if !tt.allowed {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				deps.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestUpdateOrderStatus_ConcurrentChange(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusOpen}

	deps.orders.On("GetByID", ctx, order.ID).Return(order, nil)
	deps.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusOpen, entity.OrderStatusPaid).Return(repository.ErrStatusChanged)

	_, err := svc.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusPaid)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestShipOrder(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	paid := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusPaid}
	open := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusOpen}

	deps.orders.On("GetByID", ctx, paid.ID).Return(paid, nil)
	deps.orders.On("GetByID", ctx, open.ID).Return(open, nil)
	deps.orders.On("UpdateStatus", ctx, paid.ID, entity.OrderStatusPaid, entity.OrderStatusShipped).Return(nil)

	shipped, err := svc.ShipOrder(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, shipped.Status)

	_, err = svc.ShipOrder(ctx, open.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	id := uuid.New()

	deps.orders.On("GetByID", ctx, id).Return(nil, repository.ErrOrderNotFound)

	_, err := svc.GetOrderByID(ctx, id)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderHistory_PaidAndCancelled(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	history := []entity.Order{{ID: uuid.New(), Status: entity.OrderStatusPaid}}

	deps.orders.On("GetByStatuses", ctx, []entity.OrderStatus{entity.OrderStatusPaid, entity.OrderStatusCancelled}).Return(history, nil)

	orders, err := svc.GetOrderHistory(ctx)

	require.NoError(t, err)
	assert.Equal(t, history, orders)
}

// ===================== Checkout =====================

func checkoutFixture(deps orderServiceDeps, customerID uuid.UUID) *entity.Order {
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     entity.OrderStatusOpen,
		Items:      []entity.OrderGame{{ID: uuid.New(), Price: 20, Quantity: 2, Discount: 50}},
	}
	deps.orders.On("GetOpenByCustomer", mock.Anything, customerID).Return(order, nil)
	deps.orders.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusOpen, entity.OrderStatusCheckout).Return(nil)
	return order
}

func TestCheckout_Approved(t *testing.T) {
	// Arrange
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	order := checkoutFixture(deps, customerID)

	deps.payment.On("Pay", ctx, entity.PaymentRequest{
		OrderID: order.ID, CustomerID: customerID, Amount: 20, Method: "card",
	}).Return(&entity.PaymentResult{TransactionID: "tx-1", Status: entity.PaymentApproved}, nil)
	deps.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCheckout, entity.OrderStatusPaid).Return(nil)

	// Act
	resp, err := svc.Checkout(ctx, customerID, "card")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, resp.Order.Status)
	assert.Equal(t, "tx-1", resp.TransactionID)
	deps.orders.AssertExpectations(t)
}

func TestCheckout_DeclinedCancelsOrder(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	order := checkoutFixture(deps, customerID)

	deps.payment.On("Pay", ctx, mock.Anything).Return(&entity.PaymentResult{Status: entity.PaymentDeclined}, nil)
	deps.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCheckout, entity.OrderStatusCancelled).Return(nil)

	resp, err := svc.Checkout(ctx, customerID, "card")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Order.Status)
	assert.Equal(t, entity.PaymentDeclined, resp.Payment)
}

func TestCheckout_GatewayErrorReopensCart(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()
	order := checkoutFixture(deps, customerID)

	deps.payment.On("Pay", ctx, mock.Anything).Return(nil, errors.New("connection refused"))
	deps.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCheckout, entity.OrderStatusOpen).Return(nil)

	_, err := svc.Checkout(ctx, customerID, "card")

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, entity.OrderStatusOpen, order.Status)
	deps.orders.AssertExpectations(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, deps := newOrderService()
	ctx := context.Background()
	customerID := uuid.New()

	deps.orders.On("GetOpenByCustomer", ctx, customerID).Return(&entity.Order{ID: uuid.New()}, nil)

	_, err := svc.Checkout(ctx, customerID, "card")

	assert.ErrorIs(t, err, ErrEmptyCart)
	deps.payment.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything)
}
