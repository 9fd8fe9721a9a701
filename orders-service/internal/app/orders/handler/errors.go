package handler

import (
	"errors"
	"net/http"

	"gamestore/orders-service/internal/app/orders/service"
	"gamestore/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError сопоставляет ошибки сервиса HTTP статусам
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrOrderGameNotFound),
		errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrNegativeQuantity),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPaymentFailed):
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Payment failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
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
