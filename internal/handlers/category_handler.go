package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

type CategoryHandler struct {
	catalog *catalog.Catalog
}

func NewCategoryHandler(cat *catalog.Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: cat}
}

// ListCategories lista las categorías por id ascendente (con caché)
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	f := models.CategoryFilter{Search: c.Query("search"), PageRequest: pageRequest(c, defaultListLimit)}
	items, page, err := h.catalog.ListCategories(c.Request.Context(), f)
	if err != nil {
		respondError(c, "category", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": items, "pagination": page})
}

// CreateCategories crea categorías en bloque
func (h *CategoryHandler) CreateCategories(c *gin.Context) {
	items, rejected, ok := bindBulk[models.CategoryInput](c, "categories")
	if !ok {
		return
	}
	res := h.catalog.CreateCategories(c.Request.Context(), items, rejected...)
	c.JSON(bulkStatus(res.Summary()), res)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, err := h.catalog.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "category", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// UpdateCategory actualiza parcialmente una categoría
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var update models.CategoryUpdate
	if !bindUpdate(c, &update) {
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, "category", "updating", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if _, err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "category", "deleting", err)
		return
	}
	deleted(c, "category", c.Param("id"))
}
