package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"      // Корзина покупателя
	OrderStatusCheckout  OrderStatus = "checkout"  // Идет оплата
	OrderStatusPaid      OrderStatus = "paid"      // Оплачен
	OrderStatusCancelled OrderStatus = "cancelled" // Отменен, финальный
	OrderStatusShipped   OrderStatus = "shipped"   // Отгружен, финальный
)

// Order заказ покупателя. У покупателя не больше одного открытого заказа (корзины).
type Order struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID   `json:"customer_id" gorm:"type:uuid;not null;index"`
	Date       time.Time   `json:"date" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	Items      []OrderGame `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

// Total сумма заказа с учетом скидок
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Total()
	}
	return total
}

// OrderGame строка заказа. Цена и скидка фиксируются в момент добавления игры.
type OrderGame struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_game"`
	GameID   uuid.UUID `json:"game_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_game"`
	Price    float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity int       `json:"quantity" gorm:"not null;check:quantity >= 0"`
	Discount int       `json:"discount" gorm:"not null;default:0"`
}

func (OrderGame) TableName() string {
	return "order_games"
}

// Total стоимость строки: цена * количество минус скидка в процентах
func (l OrderGame) Total() float64 {
	return l.Price * float64(l.Quantity) * float64(100-l.Discount) / 100
}

// Game поля таблицы games, нужные заказам: цена, скидка и остаток.
// Схемой таблицы владеет Catalog Service.
type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"not null"`
	Price       float64   `gorm:"type:decimal(10,2);not null"`
	UnitInStock int       `gorm:"not null"`
	Discount    int       `gorm:"not null;default:0"`
}

func (Game) TableName() string {
	return "games"
}
