package models

import "math"

// PageRequest describe una página de resultados (offset/limit)
type PageRequest struct {
	Page  int
	Limit int
}

// Skip devuelve el número de documentos a saltar. Satura en MaxInt64
// para páginas enormes, que así quedan vacías.
func (p PageRequest) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// Pagination es el bloque común de los listados
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func NewPagination(total int64, page PageRequest) Pagination {
	var totalPages int64
	if page.Limit > 0 {
		totalPages = total / int64(page.Limit)
		if total%int64(page.Limit) != 0 {
			totalPages++
		}
	}
	return Pagination{
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}
}
