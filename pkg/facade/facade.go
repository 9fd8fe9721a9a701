// Package facade объединяет несколько источников данных одного типа,
// упорядоченных по приоритету.
package facade

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Getter точечный поиск в одном источнике
type Getter[T any] func(ctx context.Context) (T, error)

// Lister полная выборка из одного источника
type Lister[T any] func(ctx context.Context) ([]T, error)

// Lookup опрашивает источники по порядку и возвращает первый успешный результат.
// К следующему источнику переходит только при промахе (isNotFound),
// любая другая ошибка возвращается сразу. Если промахнулись все, возвращается notFound.
func Lookup[T any](ctx context.Context, isNotFound func(error) bool, notFound error, getters ...Getter[T]) (T, error) {
	var zero T

	for _, get := range getters {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		value, err := get(ctx)
		if err == nil {
			return value, nil
		}
		if !isNotFound(err) {
			return zero, err
		}
	}

	return zero, notFound
}

// ListAll запускает все выборки параллельно и склеивает результаты
// в порядке приоритета источников.
func ListAll[T any](ctx context.Context, listers ...Lister[T]) ([]T, error) {
	parts := make([][]T, len(listers))

	g, gctx := errgroup.WithContext(ctx)
	for i, list := range listers {
		g.Go(func() error {
			items, err := list(gctx)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			parts[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}

	result := make([]T, 0, total)
	for _, part := range parts {
		result = append(result, part...)
	}
	return result, nil
}
