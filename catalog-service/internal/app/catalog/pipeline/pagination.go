package pipeline

import (
	"fmt"
	"math"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"

	"gorm.io/gorm"
)

// Paginate вырезает окно страницы; для "all" окно не ограничивается
func Paginate(q *entity.GameQuery) (repository.Scope, error) {
	size, err := pageLimit(q.PageSize)
	if err != nil {
		return nil, err
	}
	if q.Page < 0 {
		return nil, fmt.Errorf("%w: page must be non-negative", ErrInvalidQuery)
	}
	if size == 0 {
		return nil, nil
	}
	if q.Page > math.MaxInt/size {
		return nil, fmt.Errorf("%w: page %d is out of range", ErrInvalidQuery, q.Page)
	}

	offset := q.Page * size
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(size)
	}, nil
}

// TotalPages число страниц для количества записей и размера страницы
func TotalPages(count int64, pageSize entity.PageSizeOption) (int, error) {
	size, err := pageLimit(pageSize)
	if err != nil {
		return 0, err
	}
	if count <= 0 {
		return 0, nil
	}
	if size == 0 {
		return 1, nil
	}
	return int((count + int64(size) - 1) / int64(size)), nil
}

// pageLimit возвращает 0 для "all"
func pageLimit(option entity.PageSizeOption) (int, error) {
	if option == "" {
		option = entity.DefaultPageSize
	}
	if option == entity.PageSizeAll {
		return 0, nil
	}

	size, ok := option.Limit()
	if !ok {
		return 0, fmt.Errorf("%w: unknown page size %q", ErrInvalidQuery, option)
	}
	return size, nil
}
