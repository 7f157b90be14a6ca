package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/rype/internal/server/http/dto"
)

const orderNotFound = "Order not found"

// OrderHandler handles customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), req.Input())
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"order":   dto.NewOrderResponse(*order),
	})
}

// Mine handles GET /api/orders/my-orders.
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.facade.MyOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": dto.NewOrderList(orders)})
}

// Get handles GET /api/orders/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": dto.NewOrderResponse(*order)})
}

// Tracking handles GET /api/orders/:orderId/tracking.
func (h *OrderHandler) Tracking(c *gin.Context) {
	session, err := h.facade.Tracking(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tracking": dto.NewTrackingResponse(session)})
}
