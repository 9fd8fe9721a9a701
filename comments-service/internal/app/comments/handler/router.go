package handler

import (
	"net/http"

	"gamestore/pkg/auth"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes маршруты Comments Service.
// Читать и писать комментарии может любой, модерация только с правом ModerateComments.
func SetupRoutes(commentHandler *CommentHandler, authMiddleware *auth.Middleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("comments-service"))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "comments-service",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	games := router.Group("/games/:key/comments")
	{
		games.GET("", commentHandler.GetComments)
		games.POST("", commentHandler.AddComment)
	}

	comments := router.Group("/comments")
	{
		comments.GET("/ban/durations", commentHandler.GetBanDurations)

		moderate := comments.Group("")
		moderate.Use(authMiddleware.Authenticate(), authMiddleware.RequirePermission(auth.PermissionModerateComments))
		moderate.DELETE("/:id", commentHandler.DeleteComment)
		moderate.POST("/ban", commentHandler.BanUser)
	}

	return router
}
