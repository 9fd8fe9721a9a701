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

// SetupRoutes настраивает маршруты Orders Service.
// Корзина доступна любому авторизованному покупателю, управление заказами только с правом ManageOrders.
func SetupRoutes(orderHandler *OrderHandler, authMiddleware *auth.Middleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("orders-service"))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "orders-service",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cart := router.Group("/cart")
	cart.Use(authMiddleware.Authenticate())
	{
		cart.GET("", orderHandler.GetCart)
		cart.GET("/details", orderHandler.GetCartDetails)
		cart.POST("/games/:key", orderHandler.AddGameToCart)
		cart.DELETE("/games/:key", orderHandler.RemoveGameFromCart)
		cart.POST("/checkout", orderHandler.Checkout)
	}

	orders := router.Group("/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.GET("/my", orderHandler.GetMyOrders)
		orders.POST("/games", orderHandler.AddGameToOrder)

		manage := orders.Group("")
		manage.Use(authMiddleware.RequirePermission(auth.PermissionManageOrders))
		manage.GET("", orderHandler.GetAllOrders)
		manage.GET("/history", orderHandler.GetOrderHistory)
		manage.GET("/:id", orderHandler.GetOrder)
		manage.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		manage.POST("/:id/ship", orderHandler.ShipOrder)
		manage.PUT("/lines/:id", orderHandler.UpdateOrderGameQuantity)
		manage.DELETE("/lines/:id", orderHandler.DeleteOrderGame)
	}

	return router
}
