package service

import (
	"errors"
	"fmt"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderGameNotFound = errors.New("order game not found")
	ErrGameNotFound      = errors.New("game not found")

	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty")

	// ErrInsufficientStock общий признак нехватки остатка для обоих путей добавления
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrOutOfStock              = fmt.Errorf("%w: game is out of stock", ErrInsufficientStock)
	ErrNotEnoughStock          = fmt.Errorf("%w: not enough games in stock", ErrInsufficientStock)
	ErrNegativeQuantity        = errors.New("quantity cannot be negative")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	ErrPaymentFailed = errors.New("payment failed")
)
