package repository

import (
	"context"
	"errors"
	"fmt"

	"gamestore/orders-service/internal/app/orders/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const legacyOrdersCollection = "legacy_orders"

type legacyOrderRepository struct {
	collection *mongo.Collection
}

// NewLegacyOrderRepository заказы старого магазина из коллекции legacy_orders
func NewLegacyOrderRepository(db *mongo.Database) LegacyOrderRepository {
	return &legacyOrderRepository{collection: db.Collection(legacyOrdersCollection)}
}

// GetByID id не в формате ObjectID считается отсутствующим заказом
func (r *legacyOrderRepository) GetByID(ctx context.Context, id string) (*entity.LegacyOrder, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order entity.LegacyOrder
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get legacy order: %w", err)
	}

	return &order, nil
}

func (r *legacyOrderRepository) GetAll(ctx context.Context) ([]entity.LegacyOrder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find legacy orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]entity.LegacyOrder, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode legacy orders: %w", err)
	}

	return orders, nil
}
