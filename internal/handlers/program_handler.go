package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

type ProgramHandler struct {
	catalog *catalog.Catalog
}

func NewProgramHandler(cat *catalog.Catalog) *ProgramHandler {
	return &ProgramHandler{catalog: cat}
}

func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	f, err := programFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	items, page, err := h.catalog.ListPrograms(c.Request.Context(), f)
	if err != nil {
		respondError(c, "program", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": items, "pagination": page})
}

func (h *ProgramHandler) CreatePrograms(c *gin.Context) {
	items, rejected, ok := bindBulk[models.ProgramInput](c, "programs")
	if !ok {
		return
	}
	res := h.catalog.CreatePrograms(c.Request.Context(), items, rejected...)
	c.JSON(bulkStatus(res.Summary()), res)
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	p, err := h.catalog.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "program", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var update models.ProgramUpdate
	if !bindUpdate(c, &update) {
		return
	}
	p, err := h.catalog.UpdateProgram(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, "program", "updating", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	if _, err := h.catalog.DeleteProgram(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "program", "deleting", err)
		return
	}
	deleted(c, "program", c.Param("id"))
}
