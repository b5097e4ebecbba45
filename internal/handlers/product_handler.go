package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// ListProducts lista productos con paginación y filtros
func (h *ProductHandler) ListProducts(c *gin.Context) {
	f, err := productFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	items, page, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		respondError(c, "product", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items, "pagination": page})
}

// CreateProducts crea productos en bloque
func (h *ProductHandler) CreateProducts(c *gin.Context) {
	items, rejected, ok := bindBulk[models.ProductInput](c, "products")
	if !ok {
		return
	}
	res := h.catalog.CreateProducts(c.Request.Context(), items, rejected...)
	c.JSON(bulkStatus(res.Summary()), res)
}

// GetProduct obtiene un producto por ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "product", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct actualiza parcialmente un producto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if !bindUpdate(c, &update) {
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, "product", "updating", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct elimina un producto
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if _, err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "product", "deleting", err)
		return
	}
	deleted(c, "product", c.Param("id"))
}
