package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

type InquiryHandler struct {
	catalog *catalog.Catalog
}

func NewInquiryHandler(cat *catalog.Catalog) *InquiryHandler {
	return &InquiryHandler{catalog: cat}
}

// CreateInquiry recibe el formulario público de contacto
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var in models.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	inq, err := h.catalog.CreateInquiry(c.Request.Context(), in)
	if err != nil {
		respondError(c, "inquiry", "creating", err)
		return
	}
	c.JSON(http.StatusCreated, inq)
}

func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	items, page, err := h.catalog.ListInquiries(c.Request.Context(), pageRequest(c, defaultPagedLimit))
	if err != nil {
		respondError(c, "inquiry", "fetching", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": items, "pagination": page})
}
