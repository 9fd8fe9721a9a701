package entity

import (
	"time"

	"github.com/google/uuid"
)

// Источники заказов в сводном представлении
const (
	SourcePrimary = "primary"
	SourceLegacy  = "legacy"
)

type AddToCartRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type AddGameToOrderRequest struct {
	GameID   uuid.UUID `json:"game_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required"`
}

// UpdateQuantityRequest количество может быть 0, отрицательное отклоняет сервис
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

type CheckoutRequest struct {
	Method string `json:"method" validate:"required,oneof=card bank terminal"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type OrderGameResponse struct {
	ID       uuid.UUID `json:"id"`
	GameID   uuid.UUID `json:"game_id"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Discount int       `json:"discount"`
	Total    float64   `json:"total"`
}

type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	CustomerID uuid.UUID           `json:"customer_id"`
	Date       time.Time           `json:"date"`
	Status     OrderStatus         `json:"status"`
	Total      float64             `json:"total"`
	Items      []OrderGameResponse `json:"items"`
}

func NewOrderResponse(o *Order) OrderResponse {
	items := make([]OrderGameResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderGameResponse{
			ID:       item.ID,
			GameID:   item.GameID,
			Price:    item.Price,
			Quantity: item.Quantity,
			Discount: item.Discount,
			Total:    item.Total(),
		})
	}

	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Date:       o.Date,
		Status:     o.Status,
		Total:      o.Total(),
		Items:      items,
	}
}

// CartResponse содержимое корзины
type CartResponse struct {
	OrderID uuid.UUID           `json:"order_id"`
	Items   []OrderGameResponse `json:"items"`
	Total   float64             `json:"total"`
}

func NewCartResponse(o *Order) CartResponse {
	resp := NewOrderResponse(o)
	return CartResponse{OrderID: resp.ID, Items: resp.Items, Total: resp.Total}
}

// OrderSummary заказ в сводном представлении из любого источника
type OrderSummary struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Date       time.Time   `json:"date"`
	Status     OrderStatus `json:"status"`
	Total      float64     `json:"total"`
	Lines      int         `json:"lines"`
	Source     string      `json:"source"`
}

func SummaryFromOrder(o *Order) OrderSummary {
	return OrderSummary{
		ID:         o.ID.String(),
		CustomerID: o.CustomerID.String(),
		Date:       o.Date,
		Status:     o.Status,
		Total:      o.Total(),
		Lines:      len(o.Items),
		Source:     SourcePrimary,
	}
}

// SummaryFromLegacy переводит заказ старого магазина: отгруженный считается shipped, иначе paid
func SummaryFromLegacy(o *LegacyOrder) OrderSummary {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity) * (1 - item.Discount)
	}

	status := OrderStatusPaid
	if o.ShippedDate != nil {
		status = OrderStatusShipped
	}

	return OrderSummary{
		ID:         o.ID.Hex(),
		CustomerID: o.CustomerID,
		Date:       o.OrderDate,
		Status:     status,
		Total:      total,
		Lines:      len(o.Items),
		Source:     SourceLegacy,
	}
}

// PaymentRequest запрос к платежному шлюзу
type PaymentRequest struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
}

// PaymentResult ответ платежного шлюза
type PaymentResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // approved / declined
	Reason        string `json:"reason,omitempty"`
}

const (
	PaymentApproved = "approved"
	PaymentDeclined = "declined"
)

type CheckoutResponse struct {
	Order         OrderResponse `json:"order"`
	TransactionID string        `json:"transaction_id"`
	Payment       string        `json:"payment"`
}
