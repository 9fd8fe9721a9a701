package service

import (
	"errors"

	"gamestore/comments-service/internal/app/comments/moderation"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCommentNotFound = errors.New("comment not found")
	ErrGameNotFound    = errors.New("game not found")

	ErrEmptyField      = errors.New("name and body are required")
	ErrInvalidAction   = errors.New("action must be reply or quote")
	ErrInvalidDuration = moderation.ErrInvalidDuration

	ErrUserBanned = errors.New("user is banned")
)
