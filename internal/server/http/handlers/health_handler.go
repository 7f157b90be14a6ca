package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/rype/internal/server/http/dto"
	"github.com/polkiloo/rype/internal/usecase"
)

// HealthHandler reports service liveness and storage state.
type HealthHandler struct {
	facade HealthFacade
	now    func() time.Time
}

// NewHealthHandler creates HealthHandler instance.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade, now: time.Now}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	health, err := h.facade.Health(c.Request.Context())
	resp := dto.HealthResponse{
		Status:    "OK",
		Message:   "Rype API is running!",
		Timestamp: h.now().UTC(),
		Database:  usecase.DatabaseDisconnected,
	}
	if health != nil {
		resp.UsersCount = health.Users
		resp.OrdersCount = health.Orders
		resp.ProductsCount = health.Products
		resp.Database = health.Database
	}

	if err != nil {
		_ = c.Error(err)
		resp.Status = "ERROR"
		resp.Message = "Health check failed"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
