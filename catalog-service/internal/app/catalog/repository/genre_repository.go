package repository

import (
	"context"

	"gamestore/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository создает новый репозиторий жанров
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	return translateError(r.db.WithContext(ctx).Create(genre).Error, ErrGenreNotFound)
}

func (r *genreRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	var genre entity.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, translateError(err, ErrGenreNotFound)
	}
	return &genre, nil
}

// GetByIDs возвращает найденные жанры, отсутствующие id просто пропускаются
func (r *genreRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error) {
	var genres []entity.Genre
	if len(ids) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) GetAll(ctx context.Context) ([]entity.Genre, error) {
	var genres []entity.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.Genre, error) {
	var genres []entity.Genre
	err := r.db.WithContext(ctx).
		Where("parent_genre_id = ?", parentID).
		Order("name ASC").
		Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	result := r.db.WithContext(ctx).Model(&entity.Genre{}).Where("id = ?", genre.ID).Updates(map[string]interface{}{
		"name":            genre.Name,
		"parent_genre_id": genre.ParentGenreID,
	})
	if result.Error != nil {
		return translateError(result.Error, ErrGenreNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrGenreNotFound
	}
	return nil
}

// Delete удаляет жанр, отвязывает его от игр и поднимает дочерние жанры в корень
func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM game_genres WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Genre{}).Where("parent_genre_id = ?", id).Update("parent_genre_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Genre{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGenreNotFound
		}
		return nil
	})
	return translateError(err, ErrGenreNotFound)
}
