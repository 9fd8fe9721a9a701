package service

import (
	"context"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"

	"github.com/google/uuid"
)

// QueryPipeline превращает запрос каталога в набор условий выборки
type QueryPipeline interface {
	Filters(q *entity.GameQuery) ([]repository.Scope, error)
	Scopes(q *entity.GameQuery) ([]repository.Scope, error)
}

type GameServiceInterface interface {
	GetFilteredSortedPaginatedGames(ctx context.Context, q *entity.GameQuery) (*entity.GamePageResponse, error)
	GetGameByKey(ctx context.Context, key string) (*entity.GameResponse, error)
	GetGameByID(ctx context.Context, id uuid.UUID) (*entity.GameResponse, error)
	GameExists(ctx context.Context, key string) (bool, error)
	AddGame(ctx context.Context, req *entity.GameRequest) (*entity.GameResponse, error)
	UpdateGame(ctx context.Context, key string, req *entity.GameRequest) (*entity.GameResponse, error)
	DeleteGame(ctx context.Context, key string) error
	GetGamesByGenre(ctx context.Context, genreID uuid.UUID) ([]entity.GameResponse, error)
	GetGamesByPlatform(ctx context.Context, platformID uuid.UUID) ([]entity.GameResponse, error)
	GetGamesByPublisher(ctx context.Context, companyName string) ([]entity.GameResponse, error)
}

type GenreServiceInterface interface {
	CreateGenre(ctx context.Context, req *entity.GenreRequest) (*entity.Genre, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	GetAllGenres(ctx context.Context) ([]entity.Genre, error)
	GetSubGenres(ctx context.Context, id uuid.UUID) ([]entity.Genre, error)
	UpdateGenre(ctx context.Context, id uuid.UUID, req *entity.GenreRequest) (*entity.Genre, error)
	DeleteGenre(ctx context.Context, id uuid.UUID) error
}

type PlatformServiceInterface interface {
	CreatePlatform(ctx context.Context, req *entity.PlatformRequest) (*entity.Platform, error)
	GetPlatform(ctx context.Context, id uuid.UUID) (*entity.Platform, error)
	GetAllPlatforms(ctx context.Context) ([]entity.Platform, error)
	UpdatePlatform(ctx context.Context, id uuid.UUID, req *entity.PlatformRequest) (*entity.Platform, error)
	DeletePlatform(ctx context.Context, id uuid.UUID) error
}

type PublisherServiceInterface interface {
	CreatePublisher(ctx context.Context, req *entity.PublisherRequest) (*entity.Publisher, error)
	GetPublisher(ctx context.Context, companyName string) (*entity.Publisher, error)
	GetAllPublishers(ctx context.Context) ([]entity.Publisher, error)
	UpdatePublisher(ctx context.Context, companyName string, req *entity.PublisherRequest) (*entity.Publisher, error)
	DeletePublisher(ctx context.Context, companyName string) error
}
