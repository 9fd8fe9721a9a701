package service

import (
	"errors"

	"gamestore/catalog-service/internal/app/catalog/pipeline"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrGameNotFound      = errors.New("game not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrPlatformNotFound  = errors.New("platform not found")
	ErrPublisherNotFound = errors.New("publisher not found")

	ErrGameKeyExists  = errors.New("game with this key already exists")
	ErrAlreadyExists  = errors.New("entity with this name already exists")
	ErrGenreCycle     = errors.New("genre hierarchy cycle")
	ErrPublisherInUse = errors.New("publisher still owns games")

	// ErrInvalidQuery неизвестная сортировка, период или размер страницы
	ErrInvalidQuery = pipeline.ErrInvalidQuery
)
