package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/rype/internal/adapter/export"
	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/server/http/dto"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	facade AdminFacade
	now    func() time.Time
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade, now: time.Now}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	s, err := h.facade.Stats(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": dto.NewStatsResponse(s)})
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.AdminOrders(c.Request.Context(), CurrentUserID(c), statusFilter(c))
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  dto.NewOrderList(orders),
		"count":   len(orders),
	})
}

// Export handles GET /api/admin/orders/export and streams an XLSX workbook.
func (h *AdminHandler) Export(c *gin.Context) {
	orders, err := h.facade.AdminOrders(c.Request.Context(), CurrentUserID(c), statusFilter(c))
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}

	var buf bytes.Buffer
	if err := export.OrdersWorkbook(&buf, orders); err != nil {
		respondError(c, err, orderNotFound)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(h.now())))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// UpdateStatus handles PUT /api/admin/orders/:orderId/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	status := model.OrderStatus(req.Status)
	order, err := h.facade.SetOrderStatus(c.Request.Context(), CurrentUserID(c), c.Param("orderId"), status)
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   dto.NewOrderResponse(*order),
		"message": "Order status updated to " + string(order.Status),
	})
}

func statusFilter(c *gin.Context) model.OrderFilter {
	raw := c.Query("status")
	if raw == "" || raw == "all" {
		return model.OrderFilter{}
	}
	status := model.OrderStatus(raw)
	return model.OrderFilter{Status: &status}
}
