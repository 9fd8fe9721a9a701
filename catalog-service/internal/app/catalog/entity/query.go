package entity

import (
	"github.com/google/uuid"
)

// PublishDateOption диапазон даты выхода игры
type PublishDateOption string

const (
	PublishDateNone       PublishDateOption = "none"
	PublishDateLastWeek   PublishDateOption = "last-week"
	PublishDateLastMonth  PublishDateOption = "last-month"
	PublishDateLastYear   PublishDateOption = "last-year"
	PublishDateTwoYears   PublishDateOption = "2-years"
	PublishDateThreeYears PublishDateOption = "3-years"
)

// SortOption вариант сортировки каталога
type SortOption string

const (
	SortMostPopular   SortOption = "most-popular"
	SortMostCommented SortOption = "most-commented"
	SortPriceAsc      SortOption = "price-asc"
	SortPriceDesc     SortOption = "price-desc"
	SortNew           SortOption = "new"
)

// PageSizeOption допустимый размер страницы
type PageSizeOption string

const (
	PageSize10  PageSizeOption = "10"
	PageSize20  PageSizeOption = "20"
	PageSize50  PageSizeOption = "50"
	PageSize100 PageSizeOption = "100"
	PageSizeAll PageSizeOption = "all"

	DefaultPageSize = PageSize10
)

var pageSizes = map[PageSizeOption]int{
	PageSize10:  10,
	PageSize20:  20,
	PageSize50:  50,
	PageSize100: 100,
}

// Limit возвращает число записей на странице; ok=false для "all" и неизвестных значений
func (p PageSizeOption) Limit() (limit int, ok bool) {
	limit, ok = pageSizes[p]
	return limit, ok
}

// GameQuery критерии выборки каталога. Пустые поля означают отсутствие критерия.
type GameQuery struct {
	GenreIDs     []uuid.UUID
	PlatformIDs  []uuid.UUID
	PublisherIDs []uuid.UUID
	MinPrice     *float64
	MaxPrice     *float64
	Name         string
	PublishDate  PublishDateOption
	SortBy       SortOption
	Page         int // с нуля
	PageSize     PageSizeOption
}
