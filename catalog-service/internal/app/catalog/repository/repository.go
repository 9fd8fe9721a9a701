package repository

import (
	"context"
	"errors"

	"gamestore/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrPlatformNotFound  = errors.New("platform not found")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrForeignKey        = errors.New("foreign key violation")
)

// Scope сужающее условие выборки игр, применяется через db.Scopes
type Scope = func(*gorm.DB) *gorm.DB

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	GetByKey(ctx context.Context, key string) (*entity.Game, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	Find(ctx context.Context, scopes ...Scope) ([]entity.Game, error)
	Count(ctx context.Context, scopes ...Scope) (int64, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, ids []uuid.UUID) error
}

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Genre, error)
	GetAll(ctx context.Context) ([]entity.Genre, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.Genre, error)
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlatformRepository interface {
	Create(ctx context.Context, platform *entity.Platform) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Platform, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Platform, error)
	GetAll(ctx context.Context) ([]entity.Platform, error)
	Update(ctx context.Context, platform *entity.Platform) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PublisherRepository interface {
	Create(ctx context.Context, publisher *entity.Publisher) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error)
	GetByCompanyName(ctx context.Context, companyName string) (*entity.Publisher, error)
	GetAll(ctx context.Context) ([]entity.Publisher, error)
	Update(ctx context.Context, publisher *entity.Publisher) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// translateError приводит ошибки драйвера к ошибкам репозитория
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateKey
		case "23503": // foreign_key_violation
			return ErrForeignKey
		}
	}
	return err
}

// replaceLinks переписывает строки many2many таблицы для одной игры
func replaceLinks(tx *gorm.DB, table, column string, gameID uuid.UUID, ids []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]interface{}{"game_id": gameID, column: id})
	}
	return tx.Table(table).Create(&rows).Error
}
