package pipeline

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinNameSearchLength короче этого поиск по названию не применяется
const MinNameSearchLength = 3

// GenreFilter оставляет игры, у которых есть хотя бы один из запрошенных жанров
func GenreFilter(q *entity.GameQuery) (repository.Scope, error) {
	return linkFilter("game_genres", "genre_id", q.GenreIDs), nil
}

// PlatformFilter оставляет игры, доступные хотя бы на одной из платформ
func PlatformFilter(q *entity.GameQuery) (repository.Scope, error) {
	return linkFilter("game_platforms", "platform_id", q.PlatformIDs), nil
}

func linkFilter(table, column string, ids []uuid.UUID) repository.Scope {
	if len(ids) == 0 {
		return nil
	}

	cond := fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s.game_id = games.id AND %s.%s IN ?)", table, table, table, column)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(cond, ids)
	}
}

func PublisherFilter(q *entity.GameQuery) (repository.Scope, error) {
	if len(q.PublisherIDs) == 0 {
		return nil, nil
	}

	ids := q.PublisherIDs
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("games.publisher_id IN ?", ids)
	}, nil
}

// PriceFilter применяет нижнюю и верхнюю границы независимо друг от друга
func PriceFilter(q *entity.GameQuery) (repository.Scope, error) {
	if q.MinPrice == nil && q.MaxPrice == nil {
		return nil, nil
	}
	if !validPriceBound(q.MinPrice) || !validPriceBound(q.MaxPrice) {
		return nil, fmt.Errorf("%w: price bounds must be finite and non-negative", ErrInvalidQuery)
	}

	minPrice, maxPrice := q.MinPrice, q.MaxPrice
	return func(db *gorm.DB) *gorm.DB {
		if minPrice != nil {
			db = db.Where("games.price >= ?", *minPrice)
		}
		if maxPrice != nil {
			db = db.Where("games.price <= ?", *maxPrice)
		}
		return db
	}, nil
}

func validPriceBound(v *float64) bool {
	return v == nil || !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

// PublishDateFilter оставляет игры, вышедшие не раньше выбранного периода
type PublishDateFilter struct {
	Now func() time.Time
}

func (f PublishDateFilter) Scope(q *entity.GameQuery) (repository.Scope, error) {
	now := f.Now().UTC()

	var since time.Time
	switch q.PublishDate {
	case "", entity.PublishDateNone:
		return nil, nil
	case entity.PublishDateLastWeek:
		since = now.AddDate(0, 0, -7)
	case entity.PublishDateLastMonth:
		since = now.AddDate(0, -1, 0)
	case entity.PublishDateLastYear:
		since = now.AddDate(-1, 0, 0)
	case entity.PublishDateTwoYears:
		since = now.AddDate(-2, 0, 0)
	case entity.PublishDateThreeYears:
		since = now.AddDate(-3, 0, 0)
	default:
		return nil, fmt.Errorf("%w: unknown publish date option %q", ErrInvalidQuery, q.PublishDate)
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where("games.published_date >= ?", since)
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NameFilter регистронезависимый поиск подстроки в названии
func NameFilter(q *entity.GameQuery) (repository.Scope, error) {
	if utf8.RuneCountInString(q.Name) < MinNameSearchLength {
		return nil, nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Name)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(games.name) LIKE ? ESCAPE '\'`, pattern)
	}, nil
}
