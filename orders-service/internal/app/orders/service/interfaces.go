package service

import (
	"context"

	"gamestore/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

type OrderServiceInterface interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*entity.Order, error)
	GetCartDetails(ctx context.Context, customerID uuid.UUID) (*entity.Order, error)
	AddGameToCart(ctx context.Context, customerID uuid.UUID, gameKey string, quantity int) (*entity.Order, error)
	AddGameToOrderByID(ctx context.Context, customerID, gameID uuid.UUID, quantity int) (*entity.Order, error)
	RemoveGameFromCart(ctx context.Context, customerID uuid.UUID, gameKey string) error
	UpdateOrderGameQuantity(ctx context.Context, lineID uuid.UUID, quantity int) (*entity.OrderGame, error)
	DeleteOrderGame(ctx context.Context, lineID uuid.UUID) error
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	ShipOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	GetOrderHistory(ctx context.Context) ([]entity.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error)
	Checkout(ctx context.Context, customerID uuid.UUID, method string) (*entity.CheckoutResponse, error)
}

type OrderFacadeInterface interface {
	GetOrderByID(ctx context.Context, id string) (*entity.OrderSummary, error)
	GetAllOrders(ctx context.Context) ([]entity.OrderSummary, error)
}

// OrderReader основной источник заказов для фасада
type OrderReader interface {
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	GetOrderHistory(ctx context.Context) ([]entity.Order, error)
}
