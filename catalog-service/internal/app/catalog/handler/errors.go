package handler

import (
	"errors"
	"net/http"

	"gamestore/catalog-service/internal/app/catalog/service"
	"gamestore/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError сопоставляет ошибки сервиса HTTP статусам
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrPlatformNotFound),
		errors.Is(err, service.ErrPublisherNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuery),
		errors.Is(err, service.ErrGenreCycle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGameKeyExists),
		errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrPublisherInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
