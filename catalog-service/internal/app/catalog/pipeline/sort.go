package pipeline

import (
	"fmt"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"

	"gorm.io/gorm"
)

var sortColumns = map[entity.SortOption]string{
	entity.SortMostPopular:   "games.view_count DESC",
	entity.SortMostCommented: "games.comment_count DESC",
	entity.SortPriceAsc:      "games.price ASC",
	entity.SortPriceDesc:     "games.price DESC",
	entity.SortNew:           "games.published_date DESC",
}

// Sort упорядочивает выборку; по умолчанию сначала новые игры.
// Вторичный порядок по ключу делает страницы стабильными.
func Sort(q *entity.GameQuery) (repository.Scope, error) {
	option := q.SortBy
	if option == "" {
		option = entity.SortNew
	}

	order, ok := sortColumns[option]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort option %q", ErrInvalidQuery, q.SortBy)
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order).Order("games.key ASC")
	}, nil
}
