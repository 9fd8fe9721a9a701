package repository

import (
	"context"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceName = "catalog-service"

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository создает новый репозиторий игр
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Publisher").
		Preload("Genres").
		Preload("Platforms")
}

// Create сохраняет игру и ее связи с жанрами и платформами в одной транзакции
func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Publisher", "Genres", "Platforms").Create(game).Error; err != nil {
			return err
		}
		if err := replaceLinks(tx, "game_genres", "genre_id", game.ID, genreIDs(game.Genres)); err != nil {
			return err
		}
		return replaceLinks(tx, "game_platforms", "platform_id", game.ID, platformIDs(game.Platforms))
	})
	return translateError(err, ErrGameNotFound)
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	var game entity.Game
	if err := r.withDetails(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, translateError(err, ErrGameNotFound)
	}
	return &game, nil
}

func (r *gameRepository) GetByKey(ctx context.Context, key string) (*entity.Game, error) {
	var game entity.Game
	if err := r.withDetails(ctx).First(&game, "key = ?", key).Error; err != nil {
		return nil, translateError(err, ErrGameNotFound)
	}
	return &game, nil
}

func (r *gameRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Game{}).Where("key = ?", key).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Find выполняет выборку игр с набором условий, собранных конвейером фильтров
func (r *gameRepository) Find(ctx context.Context, scopes ...Scope) ([]entity.Game, error) {
	timer := metrics.NewDbTimer(serviceName, "select", "games")

	var games []entity.Game
	err := r.withDetails(ctx).Model(&entity.Game{}).Scopes(scopes...).Find(&games).Error
	timer.Done(err)
	if err != nil {
		return nil, err
	}
	return games, nil
}

// Count считает игры, удовлетворяющие условиям
func (r *gameRepository) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Game{}).Scopes(scopes...).Count(&count).Error
	return count, err
}

// Update обновляет поля игры и полностью заменяет наборы жанров и платформ
func (r *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Game{}).Where("id = ?", game.ID).Updates(map[string]interface{}{
			"key":            game.Key,
			"name":           game.Name,
			"description":    game.Description,
			"price":          game.Price,
			"unit_in_stock":  game.UnitInStock,
			"discount":       game.Discount,
			"publisher_id":   game.PublisherID,
			"published_date": game.PublishedDate,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGameNotFound
		}

		if err := replaceLinks(tx, "game_genres", "genre_id", game.ID, genreIDs(game.Genres)); err != nil {
			return err
		}
		return replaceLinks(tx, "game_platforms", "platform_id", game.ID, platformIDs(game.Platforms))
	})
	return translateError(err, ErrGameNotFound)
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceLinks(tx, "game_genres", "genre_id", id, nil); err != nil {
			return err
		}
		if err := replaceLinks(tx, "game_platforms", "platform_id", id, nil); err != nil {
			return err
		}

		result := tx.Delete(&entity.Game{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGameNotFound
		}
		return nil
	})
	return translateError(err, ErrGameNotFound)
}

// IncrementViewCount увеличивает счетчик просмотров для набора игр одним запросом
func (r *gameRepository) IncrementViewCount(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&entity.Game{}).
		Where("id IN ?", ids).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).
		Error
}

func genreIDs(genres []entity.Genre) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids
}

func platformIDs(platforms []entity.Platform) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(platforms))
	for _, p := range platforms {
		ids = append(ids, p.ID)
	}
	return ids
}
