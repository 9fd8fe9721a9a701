package mocks

import (
	"context"

	"gamestore/comments-service/internal/app/comments/entity"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCommentRepository мок для CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByGameKey(ctx context.Context, gameKey string) ([]entity.Comment, error) {
	args := m.Called(ctx, gameKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error {
	args := m.Called(ctx, id, body)
	return args.Error(0)
}

func (m *MockCommentRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka producer
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockGameCatalog мок для клиента каталога
type MockGameCatalog struct {
	mock.Mock
}

func (m *MockGameCatalog) GameExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
