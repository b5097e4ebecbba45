package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/catalog"
	"storefront/internal/models"
)

const (
	maxLimit          = 100
	defaultListLimit  = 50
	defaultPagedLimit = 10
)

// pageRequest lee page y limit. Valores no numéricos o cero usan el
// defecto; limit queda acotado a 1..100.
func pageRequest(c *gin.Context, defaultLimit int) models.PageRequest {
	page, err := cast.ToIntE(c.Query("page"))
	if err != nil || page == 0 {
		page = 1
	}
	limit, err := cast.ToIntE(c.Query("limit"))
	if err != nil || limit == 0 {
		limit = defaultLimit
	}
	return models.PageRequest{Page: max(page, 1), Limit: min(max(limit, 1), maxLimit)}
}

type queryError struct {
	message string
}

func (e *queryError) Error() string { return e.message }

func queryObjectID(c *gin.Context, key string) (*primitive.ObjectID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, &queryError{fmt.Sprintf("Invalid %s format", key)}
	}
	return &oid, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, &queryError{fmt.Sprintf("%s must be a number", key)}
	}
	return &v, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return nil, &queryError{fmt.Sprintf("%s must be true or false", key)}
	}
	return &v, nil
}

func productFilter(c *gin.Context) (models.ProductFilter, error) {
	f := models.ProductFilter{Search: c.Query("search"), PageRequest: pageRequest(c, defaultPagedLimit)}
	var err error
	if f.CategoryID, err = queryObjectID(c, "categoryId"); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return f, err
	}
	f.Visibility, err = queryBool(c, "visibility")
	return f, err
}

func programFilter(c *gin.Context) (models.ProgramFilter, error) {
	f := models.ProgramFilter{
		Platform:    c.Query("platform"),
		Search:      c.Query("search"),
		PageRequest: pageRequest(c, defaultPagedLimit),
	}
	var err error
	if f.CategoryID, err = queryObjectID(c, "categoryId"); err != nil {
		return f, err
	}
	if f.IsFree, err = queryBool(c, "isFree"); err != nil {
		return f, err
	}
	f.Visibility, err = queryBool(c, "visibility")
	return f, err
}

// bindBulk acepta {"<plural>": [...]} o un array JSON directo. Cada
// elemento se decodifica por separado; los que no encajan en T vuelven
// como rechazados con su posición para que el resto del lote siga.
func bindBulk[T any](c *gin.Context, plural string) ([]T, []catalog.Rejected, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, nil, false
	}
	raw = bytes.TrimSpace(raw)

	var elems []json.RawMessage
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &elems)
	} else if len(raw) > 0 {
		var envelope map[string]json.RawMessage
		if err = json.Unmarshal(raw, &envelope); err == nil {
			if list, ok := envelope[plural]; ok && string(list) != "null" {
				err = json.Unmarshal(list, &elems)
			}
		}
	}
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, nil, false
	}
	if len(elems) == 0 {
		abortWithError(c, http.StatusBadRequest, "Please provide an array of "+plural)
		return nil, nil, false
	}

	items := make([]T, 0, len(elems))
	var rejected []catalog.Rejected
	for i, elem := range elems {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			rejected = append(rejected, catalog.Rejected{Index: i, Raw: elem})
			continue
		}
		items = append(items, item)
	}
	return items, rejected, true
}

// bindUpdate decodifica el cuerpo de un PUT
func bindUpdate(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
