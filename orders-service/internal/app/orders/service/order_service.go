package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/orders-service/internal/app/orders/infrastructure"
	"gamestore/orders-service/internal/app/orders/repository"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"

	"github.com/google/uuid"
)

// OrderService корзина и жизненный цикл заказа.
// Открытый заказ покупателя и есть его корзина.
type OrderService struct {
	repos   repository.Repositories
	uow     repository.UnitOfWork
	payment infrastructure.PaymentGateway
	now     func() time.Time
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей
func NewOrderService(
	repos repository.Repositories,
	uow repository.UnitOfWork,
	payment infrastructure.PaymentGateway,
	now func() time.Time,
) *OrderService {
	return &OrderService{
		repos:   repos,
		uow:     uow,
		payment: payment,
		now:     now,
	}
}

// === КОРЗИНА ===

// GetCart возвращает открытый заказ покупателя, создавая пустой при его отсутствии
func (s *OrderService) GetCart(ctx context.Context, customerID uuid.UUID) (*entity.Order, error) {
	return s.openOrCreate(ctx, s.repos, customerID)
}

// GetCartDetails в отличие от GetCart не создает заказ
func (s *OrderService) GetCartDetails(ctx context.Context, customerID uuid.UUID) (*entity.Order, error) {
	order, err := s.repos.Orders.GetOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	return order, nil
}

func (s *OrderService) AddGameToCart(ctx context.Context, customerID uuid.UUID, gameKey string, quantity int) (*entity.Order, error) {
	return s.addGame(ctx, customerID, quantity, ErrOutOfStock, func(repos repository.Repositories) (*entity.Game, error) {
		return repos.Games.GetByKey(ctx, gameKey)
	})
}

func (s *OrderService) AddGameToOrderByID(ctx context.Context, customerID, gameID uuid.UUID, quantity int) (*entity.Order, error) {
	return s.addGame(ctx, customerID, quantity, ErrNotEnoughStock, func(repos repository.Repositories) (*entity.Game, error) {
		return repos.Games.GetByID(ctx, gameID)
	})
}

// addGame находит или создает корзину, сливает строку с существующей
// и списывает остаток. Все шаги в одной транзакции.
func (s *OrderService) addGame(
	ctx context.Context,
	customerID uuid.UUID,
	quantity int,
	stockErr error,
	findGame func(repos repository.Repositories) (*entity.Game, error),
) (*entity.Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var result *entity.Order
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		game, err := findGame(repos)
		if err != nil {
			if errors.Is(err, repository.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return fmt.Errorf("failed to get game: %w", err)
		}
		if game.UnitInStock < quantity {
			return stockErr
		}

		order, err := s.openOrCreate(ctx, repos, customerID)
		if err != nil {
			return err
		}

		line, err := repos.OrderGames.GetByOrderAndGame(ctx, order.ID, game.ID)
		switch {
		case err == nil:
			if err := repos.OrderGames.UpdateQuantity(ctx, line.ID, line.Quantity+quantity); err != nil {
				return fmt.Errorf("failed to update order game: %w", err)
			}
		case errors.Is(err, repository.ErrOrderGameNotFound):
			line = &entity.OrderGame{
				ID:       uuid.New(),
				OrderID:  order.ID,
				GameID:   game.ID,
				Price:    game.Price,
				Quantity: quantity,
				Discount: game.Discount,
			}
			if err := repos.OrderGames.Create(ctx, line); err != nil {
				return fmt.Errorf("failed to create order game: %w", err)
			}
		default:
			return fmt.Errorf("failed to get order game: %w", err)
		}

		if err := repos.Games.DecrementStock(ctx, game.ID, quantity); err != nil {
			if errors.Is(err, repository.ErrStockChanged) {
				return stockErr
			}
			return err
		}

		result, err = repos.Orders.GetByID(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("failed to reload order: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			metrics.CartGamesAdded.WithLabelValues("out_of_stock").Inc()
		} else {
			metrics.CartGamesAdded.WithLabelValues("failed").Inc()
		}
		return nil, err
	}

	metrics.CartGamesAdded.WithLabelValues("success").Inc()
	return result, nil
}

// RemoveGameFromCart удаляет строку целиком, остаток игры не возвращается
func (s *OrderService) RemoveGameFromCart(ctx context.Context, customerID uuid.UUID, gameKey string) error {
	order, err := s.repos.Orders.GetOpenByCustomer(ctx, customerID)
	if err != nil {
		return mapOrderErr(err)
	}

	game, err := s.repos.Games.GetByKey(ctx, gameKey)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to get game: %w", err)
	}

	line, err := s.repos.OrderGames.GetByOrderAndGame(ctx, order.ID, game.ID)
	if err != nil {
		return mapLineErr(err)
	}

	if err := s.repos.OrderGames.Delete(ctx, line.ID); err != nil {
		return mapLineErr(err)
	}
	return nil
}

// UpdateOrderGameQuantity ноль допустим: строка остается пустой
func (s *OrderService) UpdateOrderGameQuantity(ctx context.Context, lineID uuid.UUID, quantity int) (*entity.OrderGame, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	line, err := s.repos.OrderGames.GetByID(ctx, lineID)
	if err != nil {
		return nil, mapLineErr(err)
	}

	if err := s.repos.OrderGames.UpdateQuantity(ctx, line.ID, quantity); err != nil {
		return nil, mapLineErr(err)
	}

	line.Quantity = quantity
	return line, nil
}

func (s *OrderService) DeleteOrderGame(ctx context.Context, lineID uuid.UUID) error {
	if err := s.repos.OrderGames.Delete(ctx, lineID); err != nil {
		return mapLineErr(err)
	}
	return nil
}

// === СТАТУСЫ ===

// UpdateOrderStatus из открытого заказа можно перейти только в paid или cancelled
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}

	if !isValidStatusTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: cannot change status of a %s order to %s", ErrInvalidStatusTransition, order.Status, status)
	}

	if err := s.transition(ctx, order, status); err != nil {
		return nil, err
	}
	return order, nil
}

// ShipOrder отгрузка возможна только из paid
func (s *OrderService) ShipOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}

	if order.Status != entity.OrderStatusPaid {
		return nil, fmt.Errorf("%w: only paid orders can be shipped, order is %s", ErrInvalidStatusTransition, order.Status)
	}

	if err := s.transition(ctx, order, entity.OrderStatusShipped); err != nil {
		return nil, err
	}
	return order, nil
}

// transition условная запись статуса; гонка с другим запросом считается недопустимым переходом
func (s *OrderService) transition(ctx context.Context, order *entity.Order, to entity.OrderStatus) error {
	from := order.Status
	if err := s.repos.Orders.UpdateStatus(ctx, order.ID, from, to); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return fmt.Errorf("%w: order %s changed concurrently", ErrInvalidStatusTransition, order.ID)
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = to
	metrics.OrderStatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	logger.Info().
		Str("order_id", order.ID.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Order status changed")
	return nil
}

// === ЗАКАЗЫ ===

func (s *OrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	return order, nil
}

// GetOrderHistory оплаченные и отмененные заказы
func (s *OrderService) GetOrderHistory(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.repos.Orders.GetByStatuses(ctx, entity.OrderStatusPaid, entity.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	orders, err := s.repos.Orders.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer orders: %w", err)
	}
	return orders, nil
}

// === ОПЛАТА ===

// Checkout оплачивает корзину. На время оплаты заказ в статусе checkout,
// одобрение переводит его в paid, отказ в cancelled. Если шлюз не ответил,
// корзина снова открывается.
func (s *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, method string) (*entity.CheckoutResponse, error) {
	order, err := s.repos.Orders.GetOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	if len(order.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.transition(ctx, order, entity.OrderStatusCheckout); err != nil {
		return nil, err
	}

	result, err := s.payment.Pay(ctx, entity.PaymentRequest{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Amount:     order.Total(),
		Method:     method,
	})
	if err != nil {
		logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("Payment gateway call failed")
		if revertErr := s.transition(ctx, order, entity.OrderStatusOpen); revertErr != nil {
			logger.Error().Err(revertErr).Str("order_id", order.ID.String()).Msg("Failed to reopen order after payment error")
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	next := entity.OrderStatusCancelled
	if result.Status == entity.PaymentApproved {
		next = entity.OrderStatusPaid
	}
	if err := s.transition(ctx, order, next); err != nil {
		return nil, err
	}

	return &entity.CheckoutResponse{
		Order:         entity.NewOrderResponse(order),
		TransactionID: result.TransactionID,
		Payment:       result.Status,
	}, nil
}

// openOrCreate открытый заказ покупателя; если его нет, создается пустой
func (s *OrderService) openOrCreate(ctx context.Context, repos repository.Repositories, customerID uuid.UUID) (*entity.Order, error) {
	order, err := repos.Orders.GetOpenByCustomer(ctx, customerID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to get open order: %w", err)
	}

	order = &entity.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Date:       s.now().UTC(),
		Status:     entity.OrderStatusOpen,
		Items:      []entity.OrderGame{},
	}
	if err := repos.Orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info().
		Str("order_id", order.ID.String()).
		Str("customer_id", customerID.String()).
		Msg("Cart created")
	return order, nil
}

// isValidStatusTransition проверяет допустимость ручной смены статуса.
// paid -> shipped идет отдельным путем через ShipOrder.
func isValidStatusTransition(from, to entity.OrderStatus) bool {
	if from != entity.OrderStatusOpen {
		return false
	}
	return to == entity.OrderStatusPaid || to == entity.OrderStatusCancelled
}

func mapOrderErr(err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return ErrOrderNotFound
	}
	return fmt.Errorf("failed to get order: %w", err)
}

func mapLineErr(err error) error {
	if errors.Is(err, repository.ErrOrderGameNotFound) {
		return ErrOrderGameNotFound
	}
	return fmt.Errorf("order game: %w", err)
}
