package repository

import (
	"context"

	"gamestore/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository создает новый репозиторий издателей
func NewPublisherRepository(db *gorm.DB) PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, publisher *entity.Publisher) error {
	return translateError(r.db.WithContext(ctx).Create(publisher).Error, ErrPublisherNotFound)
}

func (r *publisherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error) {
	var publisher entity.Publisher
	if err := r.db.WithContext(ctx).First(&publisher, "id = ?", id).Error; err != nil {
		return nil, translateError(err, ErrPublisherNotFound)
	}
	return &publisher, nil
}

func (r *publisherRepository) GetByCompanyName(ctx context.Context, companyName string) (*entity.Publisher, error) {
	var publisher entity.Publisher
	if err := r.db.WithContext(ctx).First(&publisher, "company_name = ?", companyName).Error; err != nil {
		return nil, translateError(err, ErrPublisherNotFound)
	}
	return &publisher, nil
}

func (r *publisherRepository) GetAll(ctx context.Context) ([]entity.Publisher, error) {
	var publishers []entity.Publisher
	if err := r.db.WithContext(ctx).Order("company_name ASC").Find(&publishers).Error; err != nil {
		return nil, err
	}
	return publishers, nil
}

func (r *publisherRepository) Update(ctx context.Context, publisher *entity.Publisher) error {
	result := r.db.WithContext(ctx).Model(&entity.Publisher{}).Where("id = ?", publisher.ID).Updates(map[string]interface{}{
		"company_name": publisher.CompanyName,
		"home_page":    publisher.HomePage,
		"description":  publisher.Description,
	})
	if result.Error != nil {
		return translateError(result.Error, ErrPublisherNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrPublisherNotFound
	}
	return nil
}

// Delete удаляет издателя; если у него есть игры, возвращается ErrForeignKey
func (r *publisherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Publisher{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, ErrPublisherNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrPublisherNotFound
	}
	return nil
}
