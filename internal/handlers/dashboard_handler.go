package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/catalog"
)

type DashboardHandler struct {
	catalog *catalog.Catalog
}

func NewDashboardHandler(cat *catalog.Catalog) *DashboardHandler {
	return &DashboardHandler{catalog: cat}
}

// Stats devuelve los contadores del panel, sin caché
func (h *DashboardHandler) Stats(c *gin.Context) {
	st, err := h.catalog.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "dashboard statistics", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	st, err := h.catalog.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "dashboard statistics", "fetching", err)
		return
	}
	p, _ := auth.PrincipalFrom(c)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"stats":       st,
		"user":        p,
		"generatedAt": time.Now(),
	})
}
