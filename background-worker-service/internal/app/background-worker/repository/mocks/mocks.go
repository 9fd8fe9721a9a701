package mocks

import (
	"context"

	"gamestore/background-worker-service/internal/app/background-worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockGameRepository мок для GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) IncrementCommentCount(ctx context.Context, gameKey string, delta int64) error {
	args := m.Called(ctx, gameKey, delta)
	return args.Error(0)
}

func (m *MockGameRepository) SetCommentCounts(ctx context.Context, counts []entity.GameCommentCount) (int64, error) {
	args := m.Called(ctx, counts)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventDeduplicator мок для EventDeduplicator
type MockEventDeduplicator struct {
	mock.Mock
}

func (m *MockEventDeduplicator) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventDeduplicator) Forget(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// MockCommentCountSource мок для CommentCountSource
type MockCommentCountSource struct {
	mock.Mock
}

func (m *MockCommentCountSource) CountByGame(ctx context.Context) ([]entity.GameCommentCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameCommentCount), args.Error(1)
}
