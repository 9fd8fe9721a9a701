package service

import (
	"context"
	"errors"

	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/orders-service/internal/app/orders/repository"
	"gamestore/pkg/facade"

	"github.com/google/uuid"
)

// OrderFacade единое представление заказов нового магазина и старого.
// Основной источник опрашивается первым.
type OrderFacade struct {
	primary OrderReader
	legacy  repository.LegacyOrderRepository
}

func NewOrderFacade(primary OrderReader, legacy repository.LegacyOrderRepository) *OrderFacade {
	return &OrderFacade{primary: primary, legacy: legacy}
}

// GetOrderByID ищет заказ сначала в основном хранилище, затем в старом.
// Идентификатор не в формате UUID считается промахом основного источника.
func (f *OrderFacade) GetOrderByID(ctx context.Context, id string) (*entity.OrderSummary, error) {
	summary, err := facade.Lookup(ctx, isOrderNotFound, ErrOrderNotFound,
		func(ctx context.Context) (entity.OrderSummary, error) {
			orderID, err := uuid.Parse(id)
			if err != nil {
				return entity.OrderSummary{}, ErrOrderNotFound
			}
			order, err := f.primary.GetOrderByID(ctx, orderID)
			if err != nil {
				return entity.OrderSummary{}, err
			}
			return entity.SummaryFromOrder(order), nil
		},
		func(ctx context.Context) (entity.OrderSummary, error) {
			order, err := f.legacy.GetByID(ctx, id)
			if err != nil {
				return entity.OrderSummary{}, err
			}
			return entity.SummaryFromLegacy(order), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetAllOrders история основного магазина, за ней все заказы старого
func (f *OrderFacade) GetAllOrders(ctx context.Context) ([]entity.OrderSummary, error) {
	return facade.ListAll(ctx,
		func(ctx context.Context) ([]entity.OrderSummary, error) {
			orders, err := f.primary.GetOrderHistory(ctx)
			if err != nil {
				return nil, err
			}
			summaries := make([]entity.OrderSummary, 0, len(orders))
			for i := range orders {
				summaries = append(summaries, entity.SummaryFromOrder(&orders[i]))
			}
			return summaries, nil
		},
		func(ctx context.Context) ([]entity.OrderSummary, error) {
			orders, err := f.legacy.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			summaries := make([]entity.OrderSummary, 0, len(orders))
			for i := range orders {
				summaries = append(summaries, entity.SummaryFromLegacy(&orders[i]))
			}
			return summaries, nil
		},
	)
}

func isOrderNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, repository.ErrOrderNotFound)
}
