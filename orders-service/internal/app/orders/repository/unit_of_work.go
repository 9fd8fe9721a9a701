package repository

import (
	"context"

	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork транзакции поверх gorm
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// NewRepositories репозитории без транзакции
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Orders:     NewOrderRepository(db),
		OrderGames: NewOrderGameRepository(db),
		Games:      NewGameRepository(db),
	}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
