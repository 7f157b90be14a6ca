package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/rype/internal/server/http/dto"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler creates ProductHandler instance.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category == "all" {
		category = ""
	}

	products, err := h.facade.Products(c.Request.Context(), category, c.Query("featured") == "true")
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": dto.NewProductList(products)})
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": dto.NewProductResponse(*product)})
}
