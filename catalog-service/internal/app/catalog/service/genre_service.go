package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"
	"gamestore/catalog-service/internal/app/catalog/util"
	"gamestore/pkg/logger"

	"github.com/google/uuid"
)

const referenceCacheTTL = time.Hour

// GenreService управляет деревом жанров, список жанров кешируется в Redis
type GenreService struct {
	genreRepo repository.GenreRepository
	cache     util.ReferenceCache
}

func NewGenreService(genreRepo repository.GenreRepository, cache util.ReferenceCache) *GenreService {
	return &GenreService{genreRepo: genreRepo, cache: cache}
}

// CreateGenre создает жанр; родитель, если указан, должен существовать
func (s *GenreService) CreateGenre(ctx context.Context, req *entity.GenreRequest) (*entity.Genre, error) {
	if req.ParentGenreID != nil {
		if _, err := s.getGenre(ctx, *req.ParentGenreID); err != nil {
			return nil, err
		}
	}

	genre := &entity.Genre{
		ID:            uuid.New(),
		Name:          req.Name,
		ParentGenreID: req.ParentGenreID,
	}

	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	invalidate(ctx, s.cache, util.GenresCacheKey)
	return genre, nil
}

func (s *GenreService) GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	return s.getGenre(ctx, id)
}

// GetAllGenres сначала проверяет кеш, при промахе читает БД и кеширует
func (s *GenreService) GetAllGenres(ctx context.Context) ([]entity.Genre, error) {
	var genres []entity.Genre
	if found, err := s.cache.Get(ctx, util.GenresCacheKey, &genres); err == nil && found {
		return genres, nil
	}

	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}

	if err := s.cache.Set(ctx, util.GenresCacheKey, genres, referenceCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache genres")
	}
	return genres, nil
}

func (s *GenreService) GetSubGenres(ctx context.Context, id uuid.UUID) ([]entity.Genre, error) {
	if _, err := s.getGenre(ctx, id); err != nil {
		return nil, err
	}

	children, err := s.genreRepo.GetChildren(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sub-genres: %w", err)
	}
	return children, nil
}

// UpdateGenre обновляет жанр. Родителем нельзя сделать сам жанр
// и жанр, чьим родителем является обновляемый (проверка на глубину 1).
func (s *GenreService) UpdateGenre(ctx context.Context, id uuid.UUID, req *entity.GenreRequest) (*entity.Genre, error) {
	genre, err := s.getGenre(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentGenreID != nil {
		parentID := *req.ParentGenreID
		if parentID == id {
			return nil, fmt.Errorf("%w: genre %s cannot be its own parent", ErrGenreCycle, id)
		}

		parent, err := s.getGenre(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentGenreID != nil && *parent.ParentGenreID == id {
			return nil, fmt.Errorf("%w: genre %s is a child of %s", ErrGenreCycle, parentID, id)
		}
	}

	genre.Name = req.Name
	genre.ParentGenreID = req.ParentGenreID

	if err := s.genreRepo.Update(ctx, genre); err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return nil, ErrGenreNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	invalidate(ctx, s.cache, util.GenresCacheKey)
	return genre, nil
}

func (s *GenreService) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	if err := s.genreRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return ErrGenreNotFound
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	invalidate(ctx, s.cache, util.GenresCacheKey)
	return nil
}

func (s *GenreService) getGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	genre, err := s.genreRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGenreNotFound, id)
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return genre, nil
}

// invalidate сбрасывает кеш; ошибка кеша не прерывает операцию, данные уже в БД
func invalidate(ctx context.Context, cache util.ReferenceCache, key string) {
	if err := cache.Invalidate(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cache")
	}
}
