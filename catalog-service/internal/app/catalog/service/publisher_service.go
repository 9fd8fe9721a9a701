package service

import (
	"context"
	"errors"
	"fmt"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/pipeline"
	"gamestore/catalog-service/internal/app/catalog/repository"
	"gamestore/catalog-service/internal/app/catalog/util"
	"gamestore/pkg/logger"

	"github.com/google/uuid"
)

// PublisherService издатели адресуются по названию компании
type PublisherService struct {
	publisherRepo repository.PublisherRepository
	gameRepo      repository.GameRepository
	cache         util.ReferenceCache
}

func NewPublisherService(
	publisherRepo repository.PublisherRepository,
	gameRepo repository.GameRepository,
	cache util.ReferenceCache,
) *PublisherService {
	return &PublisherService{publisherRepo: publisherRepo, gameRepo: gameRepo, cache: cache}
}

func (s *PublisherService) CreatePublisher(ctx context.Context, req *entity.PublisherRequest) (*entity.Publisher, error) {
	publisher := &entity.Publisher{
		ID:          uuid.New(),
		CompanyName: req.CompanyName,
		HomePage:    req.HomePage,
		Description: req.Description,
	}

	if err := s.publisherRepo.Create(ctx, publisher); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	invalidate(ctx, s.cache, util.PublishersCacheKey)
	return publisher, nil
}

func (s *PublisherService) GetPublisher(ctx context.Context, companyName string) (*entity.Publisher, error) {
	publisher, err := s.publisherRepo.GetByCompanyName(ctx, companyName)
	if err != nil {
		if errors.Is(err, repository.ErrPublisherNotFound) {
			return nil, ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher: %w", err)
	}
	return publisher, nil
}

func (s *PublisherService) GetAllPublishers(ctx context.Context) ([]entity.Publisher, error) {
	var publishers []entity.Publisher
	if found, err := s.cache.Get(ctx, util.PublishersCacheKey, &publishers); err == nil && found {
		return publishers, nil
	}

	publishers, err := s.publisherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get publishers: %w", err)
	}

	if err := s.cache.Set(ctx, util.PublishersCacheKey, publishers, referenceCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache publishers")
	}
	return publishers, nil
}

func (s *PublisherService) UpdatePublisher(ctx context.Context, companyName string, req *entity.PublisherRequest) (*entity.Publisher, error) {
	publisher, err := s.GetPublisher(ctx, companyName)
	if err != nil {
		return nil, err
	}

	publisher.CompanyName = req.CompanyName
	publisher.HomePage = req.HomePage
	publisher.Description = req.Description

	if err := s.publisherRepo.Update(ctx, publisher); err != nil {
		switch {
		case errors.Is(err, repository.ErrPublisherNotFound):
			return nil, ErrPublisherNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}

	invalidate(ctx, s.cache, util.PublishersCacheKey)
	return publisher, nil
}

// DeletePublisher удаляет издателя без игр
func (s *PublisherService) DeletePublisher(ctx context.Context, companyName string) error {
	publisher, err := s.GetPublisher(ctx, companyName)
	if err != nil {
		return err
	}

	owned, err := pipeline.PublisherFilter(&entity.GameQuery{PublisherIDs: []uuid.UUID{publisher.ID}})
	if err != nil {
		return err
	}
	count, err := s.gameRepo.Count(ctx, owned)
	if err != nil {
		return fmt.Errorf("failed to count publisher games: %w", err)
	}
	if count > 0 {
		return ErrPublisherInUse
	}

	if err := s.publisherRepo.Delete(ctx, publisher.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPublisherNotFound):
			return ErrPublisherNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return ErrPublisherInUse
		}
		return fmt.Errorf("failed to delete publisher: %w", err)
	}

	invalidate(ctx, s.cache, util.PublishersCacheKey)
	return nil
}
