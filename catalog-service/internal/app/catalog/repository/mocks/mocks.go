package mocks

import (
	"context"
	"encoding/json"
	"time"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGameRepository мок для GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepository) GetByKey(ctx context.Context, key string) (*entity.Game, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepository) Find(ctx context.Context, scopes ...repository.Scope) ([]entity.Game, error) {
	args := m.Called(ctx, scopes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Game), args.Error(1)
}

func (m *MockGameRepository) Count(ctx context.Context, scopes ...repository.Scope) (int64, error) {
	args := m.Called(ctx, scopes)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGameRepository) Update(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepository) IncrementViewCount(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockGenreRepository мок для GenreRepository
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetAll(ctx context.Context) ([]entity.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.Genre, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlatformRepository мок для PlatformRepository
type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) Create(ctx context.Context, platform *entity.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Platform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Platform, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) GetAll(ctx context.Context) ([]entity.Platform, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) Update(ctx context.Context, platform *entity.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisherRepository мок для PublisherRepository
type MockPublisherRepository struct {
	mock.Mock
}

func (m *MockPublisherRepository) Create(ctx context.Context, publisher *entity.Publisher) error {
	args := m.Called(ctx, publisher)
	return args.Error(0)
}

func (m *MockPublisherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Publisher), args.Error(1)
}

func (m *MockPublisherRepository) GetByCompanyName(ctx context.Context, companyName string) (*entity.Publisher, error) {
	args := m.Called(ctx, companyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Publisher), args.Error(1)
}

func (m *MockPublisherRepository) GetAll(ctx context.Context) ([]entity.Publisher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Publisher), args.Error(1)
}

func (m *MockPublisherRepository) Update(ctx context.Context, publisher *entity.Publisher) error {
	args := m.Called(ctx, publisher)
	return args.Error(0)
}

func (m *MockPublisherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReferenceCache мок для кеша справочников.
// Get копирует возвращаемое значение в dest через JSON.
type MockReferenceCache struct {
	mock.Mock
}

func (m *MockReferenceCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	if len(args) > 2 && args.Get(2) != nil {
		data, _ := json.Marshal(args.Get(2))
		_ = json.Unmarshal(data, dest)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockReferenceCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockReferenceCache) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockReferenceCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
