package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegacyOrder заказ из старого магазина, хранится в MongoDB только для чтения
type LegacyOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID  string             `bson:"customer_id"`
	OrderDate   time.Time          `bson:"order_date"`
	ShippedDate *time.Time         `bson:"shipped_date,omitempty"`
	ShipName    string             `bson:"ship_name"`
	ShipAddress string             `bson:"ship_address"`
	ShipCity    string             `bson:"ship_city"`
	ShipCountry string             `bson:"ship_country"`
	Items       []LegacyOrderItem  `bson:"items"`
}

type LegacyOrderItem struct {
	ProductKey string  `bson:"product_key"`
	UnitPrice  float64 `bson:"unit_price"`
	Quantity   int     `bson:"quantity"`
	Discount   float64 `bson:"discount"` // доля 0..1
}
