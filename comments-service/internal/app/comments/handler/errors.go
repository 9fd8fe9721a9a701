package handler

import (
	"errors"
	"net/http"

	"gamestore/comments-service/internal/app/comments/service"
	"gamestore/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyField),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserBanned):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
