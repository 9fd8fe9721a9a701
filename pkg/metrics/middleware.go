package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GinPrometheusMiddleware собирает http_requests_total и http_request_duration_seconds
func GinPrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		HttpRequestsInFlight.WithLabelValues(serviceName).Inc()
		defer HttpRequestsInFlight.WithLabelValues(serviceName).Dec()

		c.Next()

		route := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())

		HttpRequestsTotal.WithLabelValues(serviceName, c.Request.Method, route, status).Inc()
		HttpRequestDuration.WithLabelValues(serviceName, c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// routeLabel использует шаблон маршрута (/games/:key), чтобы ключи и UUID не раздували кардинальность
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
