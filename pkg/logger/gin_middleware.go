package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// GinLoggerMiddleware пишет по одной записи на каждый HTTP запрос
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()

		event := Info()
		switch {
		case status >= 500:
			event = Error()
		case status >= 400:
			event = Warn()
		}

		event = event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Str("remote_addr", c.ClientIP()).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Dur("duration", time.Since(start))

		if userID, ok := c.Get("user_id"); ok {
			event = event.Interface("user_id", userID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}
