package repository

import (
	"context"
	"errors"
	"fmt"

	"gamestore/comments-service/internal/app/comments/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const commentsCollection = "comments"

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCommentNotFound = errors.New("comment not found")
)

type commentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{collection: db.Collection(commentsCollection)}
}

// EnsureIndexes индексы для выборки по игре и по родителю
func (r *commentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "game_key", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("game_key_created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}},
			Options: options.Index().SetName("parent_id_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %w", err)
	}
	return nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCommentNotFound
	}

	var comment entity.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// GetByGameKey сортировка по created_at, затем по _id для одинакового времени
func (r *commentRepository) GetByGameKey(ctx context.Context, gameKey string) ([]entity.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"game_key": gameKey}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := make([]entity.Comment, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"body": body}})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}
