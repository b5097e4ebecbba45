package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

// ServiceHandler direcciona los servicios por su id numérico
type ServiceHandler struct {
	catalog *catalog.Catalog
}

func NewServiceHandler(cat *catalog.Catalog) *ServiceHandler {
	return &ServiceHandler{catalog: cat}
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	f := models.ServiceFilter{Search: c.Query("search"), PageRequest: pageRequest(c, defaultListLimit)}
	items, page, err := h.catalog.ListServices(c.Request.Context(), f)
	if err != nil {
		respondError(c, "service", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": items, "pagination": page})
}

func (h *ServiceHandler) CreateServices(c *gin.Context) {
	items, rejected, ok := bindBulk[models.ServiceInput](c, "services")
	if !ok {
		return
	}
	res := h.catalog.CreateServices(c.Request.Context(), items, rejected...)
	c.JSON(bulkStatus(res.Summary()), res)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "service", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var update models.ServiceUpdate
	if !bindUpdate(c, &update) {
		return
	}
	svc, err := h.catalog.UpdateService(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, "service", "updating", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) DeleteService(c *gin.Context) {
	if _, err := h.catalog.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "service", "deleting", err)
		return
	}
	deleted(c, "service", c.Param("id"))
}
