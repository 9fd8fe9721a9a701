// Package pipeline собирает выборку каталога из последовательности шагов:
// фильтры, сортировка, пагинация. Каждый шаг превращает критерий запроса
// в сужающее условие gorm и никогда не читает данные сам.
package pipeline

import (
	"errors"
	"time"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/repository"
)

// ErrInvalidQuery неизвестное значение перечисления или некорректный параметр запроса
var ErrInvalidQuery = errors.New("invalid query")

// Step один шаг конвейера. nil Scope означает, что критерий не задан.
type Step interface {
	Scope(q *entity.GameQuery) (repository.Scope, error)
}

// StepFunc адаптер для шагов-функций
type StepFunc func(q *entity.GameQuery) (repository.Scope, error)

func (f StepFunc) Scope(q *entity.GameQuery) (repository.Scope, error) {
	return f(q)
}

// Pipeline фиксированная последовательность:
// Genre -> Platform -> Publisher -> Price -> PublishDate -> Name -> Sort -> Paginate.
// Не хранит состояния запроса, один экземпляр обслуживает все запросы.
type Pipeline struct {
	filters   []Step
	sorter    Step
	paginator Step
}

// New создает конвейер каталога; now используется фильтром по дате выхода
func New(now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}

	return &Pipeline{
		filters: []Step{
			StepFunc(GenreFilter),
			StepFunc(PlatformFilter),
			StepFunc(PublisherFilter),
			StepFunc(PriceFilter),
			PublishDateFilter{Now: now},
			StepFunc(NameFilter),
		},
		sorter:    StepFunc(Sort),
		paginator: StepFunc(Paginate),
	}
}

// WithFilter возвращает копию конвейера с дополнительным фильтром после встроенных
func (p *Pipeline) WithFilter(step Step) *Pipeline {
	filters := make([]Step, 0, len(p.filters)+1)
	filters = append(filters, p.filters...)
	filters = append(filters, step)

	return &Pipeline{filters: filters, sorter: p.sorter, paginator: p.paginator}
}

// Filters условия без сортировки и пагинации, для подсчета общего количества
func (p *Pipeline) Filters(q *entity.GameQuery) ([]repository.Scope, error) {
	return collect(q, p.filters)
}

// Scopes полная цепочка: фильтры, сортировка, окно страницы
func (p *Pipeline) Scopes(q *entity.GameQuery) ([]repository.Scope, error) {
	steps := make([]Step, 0, len(p.filters)+2)
	steps = append(steps, p.filters...)
	steps = append(steps, p.sorter, p.paginator)

	return collect(q, steps)
}

func collect(q *entity.GameQuery, steps []Step) ([]repository.Scope, error) {
	scopes := make([]repository.Scope, 0, len(steps))
	for _, step := range steps {
		scope, err := step.Scope(q)
		if err != nil {
			return nil, err
		}
		if scope != nil {
			scopes = append(scopes, scope)
		}
	}
	return scopes, nil
}
