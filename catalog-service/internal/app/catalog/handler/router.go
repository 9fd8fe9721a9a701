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

// SetupRoutes настраивает маршруты Catalog Service.
// Чтение каталога публичное, изменения требуют прав из JWT.
func SetupRoutes(games *GameHandler, refs *ReferenceHandler, authMiddleware *auth.Middleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-service",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := authMiddleware.Authenticate()
	manage := func(permission string) []gin.HandlerFunc {
		return []gin.HandlerFunc{authenticated, authMiddleware.RequirePermission(permission)}
	}

	gameRoutes := router.Group("/games")
	{
		gameRoutes.GET("", games.GetGames)
		gameRoutes.GET("/:key", games.GetGame)
		gameRoutes.HEAD("/:key", games.GameExists)
		gameRoutes.GET("/find/:id", games.GetGameByID)

		gameRoutes.POST("", append(manage(auth.PermissionManageGames), games.CreateGame)...)
		gameRoutes.PUT("/:key", append(manage(auth.PermissionManageGames), games.UpdateGame)...)
		gameRoutes.DELETE("/:key", append(manage(auth.PermissionManageGames), games.DeleteGame)...)
	}

	genres := router.Group("/genres")
	{
		genres.GET("", refs.GetAllGenres)
		genres.GET("/:id", refs.GetGenre)
		genres.GET("/:id/sub-genres", refs.GetSubGenres)
		genres.GET("/:id/games", refs.GetGamesByGenre)

		genres.POST("", append(manage(auth.PermissionManageGenres), refs.CreateGenre)...)
		genres.PUT("/:id", append(manage(auth.PermissionManageGenres), refs.UpdateGenre)...)
		genres.DELETE("/:id", append(manage(auth.PermissionManageGenres), refs.DeleteGenre)...)
	}

	platforms := router.Group("/platforms")
	{
		platforms.GET("", refs.GetAllPlatforms)
		platforms.GET("/:id", refs.GetPlatform)
		platforms.GET("/:id/games", refs.GetGamesByPlatform)

		platforms.POST("", append(manage(auth.PermissionManagePlatforms), refs.CreatePlatform)...)
		platforms.PUT("/:id", append(manage(auth.PermissionManagePlatforms), refs.UpdatePlatform)...)
		platforms.DELETE("/:id", append(manage(auth.PermissionManagePlatforms), refs.DeletePlatform)...)
	}

	publishers := router.Group("/publishers")
	{
		publishers.GET("", refs.GetAllPublishers)
		publishers.GET("/:companyName", refs.GetPublisher)
		publishers.GET("/:companyName/games", refs.GetGamesByPublisher)

		publishers.POST("", append(manage(auth.PermissionManagePublishers), refs.CreatePublisher)...)
		publishers.PUT("/:companyName", append(manage(auth.PermissionManagePublishers), refs.UpdatePublisher)...)
		publishers.DELETE("/:companyName", append(manage(auth.PermissionManagePublishers), refs.DeletePublisher)...)
	}

	return router
}
