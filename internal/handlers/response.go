package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/middleware"
)

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondError traduce los errores del catálogo a respuestas HTTP. action es
// el verbo para el mensaje genérico de 500: "fetching", "updating"...
func respondError(c *gin.Context, entity, action string, err error) {
	var verr *catalog.ValidationError
	var cerr *catalog.ConflictError
	switch {
	case errors.Is(err, catalog.ErrInvalidID):
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID", entity))
	case errors.Is(err, catalog.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("%s not found", capitalize(entity)))
	case errors.As(err, &verr):
		abortWithError(c, http.StatusBadRequest, verr.Message)
	case errors.As(err, &cerr):
		abortWithError(c, http.StatusBadRequest, cerr.Message)
	default:
		zap.L().Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Error(err),
		)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred while %s the %s", action, entity))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// bulkStatus es 201 si se creó al menos un elemento
func bulkStatus(s catalog.Summary) int {
	if s.Successful > 0 {
		return http.StatusCreated
	}
	return http.StatusBadRequest
}

func deleted(c *gin.Context, entity, id string) {
	c.JSON(http.StatusOK, gin.H{
		"message":     capitalize(entity) + " deleted successfully",
		entity + "Id": id,
	})
}
