package handler

import (
	"net/http"

	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/orders-service/internal/app/orders/service"
	"gamestore/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OrderHandler обрабатывает HTTP запросы корзины и заказов
type OrderHandler struct {
	orderService service.OrderServiceInterface
	orderFacade  service.OrderFacadeInterface
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderServiceInterface, orderFacade service.OrderFacadeInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		orderFacade:  orderFacade,
		validator:    validator.New(),
	}
}

// bind читает и валидирует тело запроса; при ошибке ответ уже отправлен
func (h *OrderHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return false
	}
	return true
}

// customerID покупатель из JWT
func customerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

// === КОРЗИНА ===

// GetCart обрабатывает GET /cart, пустая корзина создается при первом чтении
func (h *OrderHandler) GetCart(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetCart(c.Request.Context(), customer)
	if err != nil {
		respondError(c, err, "Failed to get cart")
		return
	}
	c.JSON(http.StatusOK, entity.NewCartResponse(order))
}

// GetCartDetails обрабатывает GET /cart/details, без корзины 404
func (h *OrderHandler) GetCartDetails(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetCartDetails(c.Request.Context(), customer)
	if err != nil {
		respondError(c, err, "Failed to get cart")
		return
	}
	c.JSON(http.StatusOK, entity.NewOrderResponse(order))
}

// AddGameToCart обрабатывает POST /cart/games/{key}
func (h *OrderHandler) AddGameToCart(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	var req entity.AddToCartRequest
	if !h.bind(c, &req) {
		return
	}

	order, err := h.orderService.AddGameToCart(c.Request.Context(), customer, c.Param("key"), req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to add game to cart")
		return
	}
	c.JSON(http.StatusOK, entity.NewCartResponse(order))
}

// AddGameToOrder обрабатывает POST /orders/games
func (h *OrderHandler) AddGameToOrder(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	var req entity.AddGameToOrderRequest
	if !h.bind(c, &req) {
		return
	}

	order, err := h.orderService.AddGameToOrderByID(c.Request.Context(), customer, req.GameID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to add game to order")
		return
	}
	c.JSON(http.StatusOK, entity.NewOrderResponse(order))
}

// RemoveGameFromCart обрабатывает DELETE /cart/games/{key}
func (h *OrderHandler) RemoveGameFromCart(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	if err := h.orderService.RemoveGameFromCart(c.Request.Context(), customer, c.Param("key")); err != nil {
		respondError(c, err, "Failed to remove game from cart")
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout обрабатывает POST /cart/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	var req entity.CheckoutRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.orderService.Checkout(c.Request.Context(), customer, req.Method)
	if err != nil {
		respondError(c, err, "Failed to checkout")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// === ЗАКАЗЫ ===

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetOrdersByCustomer(c.Request.Context(), customer)
	if err != nil {
		respondError(c, err, "Failed to get orders")
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetAllOrders обрабатывает GET /orders: история нового магазина и заказы старого
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderFacade.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	orders, err := h.orderService.GetOrderHistory(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get order history")
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder обрабатывает GET /orders/{id}; id может быть UUID или ObjectID старого магазина
func (h *OrderHandler) GetOrder(c *gin.Context) {
	summary, err := h.orderFacade.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get order")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateOrderStatus обрабатывает PATCH /orders/{id}/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req entity.UpdateOrderStatusRequest
	if !h.bind(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, entity.NewOrderResponse(order))
}

func (h *OrderHandler) ShipOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := h.orderService.ShipOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to ship order")
		return
	}
	c.JSON(http.StatusOK, entity.NewOrderResponse(order))
}

// UpdateOrderGameQuantity обрабатывает PUT /orders/lines/{id}
func (h *OrderHandler) UpdateOrderGameQuantity(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req entity.UpdateQuantityRequest
	if !h.bind(c, &req) {
		return
	}

	line, err := h.orderService.UpdateOrderGameQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update order game")
		return
	}
	c.JSON(http.StatusOK, entity.OrderGameResponse{
		ID:       line.ID,
		GameID:   line.GameID,
		Price:    line.Price,
		Quantity: line.Quantity,
		Discount: line.Discount,
		Total:    line.Total(),
	})
}

func (h *OrderHandler) DeleteOrderGame(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrderGame(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete order game")
		return
	}
	c.Status(http.StatusNoContent)
}

func toOrderResponses(orders []entity.Order) []entity.OrderResponse {
	responses := make([]entity.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, entity.NewOrderResponse(&orders[i]))
	}
	return responses
}
