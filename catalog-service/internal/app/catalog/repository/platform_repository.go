package repository

import (
	"context"

	"gamestore/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type platformRepository struct {
	db *gorm.DB
}

// NewPlatformRepository создает новый репозиторий платформ
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepository{db: db}
}

func (r *platformRepository) Create(ctx context.Context, platform *entity.Platform) error {
	return translateError(r.db.WithContext(ctx).Create(platform).Error, ErrPlatformNotFound)
}

func (r *platformRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Platform, error) {
	var platform entity.Platform
	if err := r.db.WithContext(ctx).First(&platform, "id = ?", id).Error; err != nil {
		return nil, translateError(err, ErrPlatformNotFound)
	}
	return &platform, nil
}

func (r *platformRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Platform, error) {
	var platforms []entity.Platform
	if len(ids) == 0 {
		return platforms, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

func (r *platformRepository) GetAll(ctx context.Context) ([]entity.Platform, error) {
	var platforms []entity.Platform
	if err := r.db.WithContext(ctx).Order("type ASC").Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

func (r *platformRepository) Update(ctx context.Context, platform *entity.Platform) error {
	result := r.db.WithContext(ctx).Model(&entity.Platform{}).Where("id = ?", platform.ID).Update("type", platform.Type)
	if result.Error != nil {
		return translateError(result.Error, ErrPlatformNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

func (r *platformRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM game_platforms WHERE platform_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Platform{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPlatformNotFound
		}
		return nil
	})
	return translateError(err, ErrPlatformNotFound)
}
