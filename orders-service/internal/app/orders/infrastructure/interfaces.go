package infrastructure

import (
	"context"

	"gamestore/orders-service/internal/app/orders/entity"
)

// PaymentGateway внешний платежный шлюз
type PaymentGateway interface {
	Pay(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentResult, error)
}
