package repository

import (
	"context"
	"fmt"

	"gamestore/background-worker-service/internal/app/background-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// commentsCollection коллекция Comments Service, воркер только читает ее
const commentsCollection = "comments"

type commentCountRepository struct {
	collection *mongo.Collection
}

func NewCommentCountRepository(db *mongo.Database) CommentCountSource {
	return &commentCountRepository{collection: db.Collection(commentsCollection)}
}

// CountByGame считает все комментарии игры, удаленные тоже: узел удаленного остается в дереве
func (r *commentCountRepository) CountByGame(ctx context.Context) ([]entity.GameCommentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$game_key"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate comments: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make([]entity.GameCommentCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode comment counts: %w", err)
	}
	return counts, nil
}
