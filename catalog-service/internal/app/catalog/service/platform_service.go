package service

import (
	"context"
	"errors"
	"fmt"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"
	"gamestore/catalog-service/internal/app/catalog/util"
	"gamestore/pkg/logger"

	"github.com/google/uuid"
)

type PlatformService struct {
	platformRepo repository.PlatformRepository
	cache        util.ReferenceCache
}

func NewPlatformService(platformRepo repository.PlatformRepository, cache util.ReferenceCache) *PlatformService {
	return &PlatformService{platformRepo: platformRepo, cache: cache}
}

func (s *PlatformService) CreatePlatform(ctx context.Context, req *entity.PlatformRequest) (*entity.Platform, error) {
	platform := &entity.Platform{ID: uuid.New(), Type: req.Type}

	if err := s.platformRepo.Create(ctx, platform); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create platform: %w", err)
	}

	invalidate(ctx, s.cache, util.PlatformsCacheKey)
	return platform, nil
}

func (s *PlatformService) GetPlatform(ctx context.Context, id uuid.UUID) (*entity.Platform, error) {
	platform, err := s.platformRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlatformNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	return platform, nil
}

func (s *PlatformService) GetAllPlatforms(ctx context.Context) ([]entity.Platform, error) {
	var platforms []entity.Platform
	if found, err := s.cache.Get(ctx, util.PlatformsCacheKey, &platforms); err == nil && found {
		return platforms, nil
	}

	platforms, err := s.platformRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platforms: %w", err)
	}

	if err := s.cache.Set(ctx, util.PlatformsCacheKey, platforms, referenceCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache platforms")
	}
	return platforms, nil
}

func (s *PlatformService) UpdatePlatform(ctx context.Context, id uuid.UUID, req *entity.PlatformRequest) (*entity.Platform, error) {
	platform := &entity.Platform{ID: id, Type: req.Type}

	if err := s.platformRepo.Update(ctx, platform); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlatformNotFound):
			return nil, ErrPlatformNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to update platform: %w", err)
	}

	invalidate(ctx, s.cache, util.PlatformsCacheKey)
	return platform, nil
}

func (s *PlatformService) DeletePlatform(ctx context.Context, id uuid.UUID) error {
	if err := s.platformRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPlatformNotFound) {
			return ErrPlatformNotFound
		}
		return fmt.Errorf("failed to delete platform: %w", err)
	}

	invalidate(ctx, s.cache, util.PlatformsCacheKey)
	return nil
}
