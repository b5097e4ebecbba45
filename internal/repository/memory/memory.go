// Package memory es un almacén en proceso con el mismo contrato que los
// repositorios de MongoDB: claves únicas, orden fijo, filtros y paginación.
// Sirve para desarrollo local (STORE_DRIVER=memory) y para las pruebas.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"
)

// Store agrupa una tabla por colección
type Store struct {
	Categories *CategoryStore
	Products   *ProductStore
	Programs   *ProgramStore
	Services   *ServiceStore
	Inquiries  *InquiryStore
	Users      *UserStore
}

func New() *Store {
	return &Store{
		Categories: &CategoryStore{},
		Products:   &ProductStore{},
		Programs:   &ProgramStore{},
		Services:   &ServiceStore{},
		Inquiries:  &InquiryStore{},
		Users:      &UserStore{},
	}
}

// table guarda las filas en orden de inserción
type table[T any] struct {
	mu   sync.RWMutex
	rows []*T
}

func (t *table[T]) find(match func(*T) bool) (int, *T) {
	for i, row := range t.rows {
		if match(row) {
			return i, row
		}
	}
	return -1, nil
}

func (t *table[T]) remove(i int) {
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

func (t *table[T]) removeWhere(match func(*T) bool) int64 {
	kept := t.rows[:0]
	var n int64
	for _, row := range t.rows {
		if match(row) {
			n++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return n
}

func (t *table[T]) count(match func(*T) bool) int64 {
	var n int64
	for _, row := range t.rows {
		if match(row) {
			n++
		}
	}
	return n
}

// newestFirst filtra y devuelve copias de la más reciente a la más antigua
func (t *table[T]) newestFirst(match func(*T) bool) []T {
	out := make([]T, 0)
	for i := len(t.rows) - 1; i >= 0; i-- {
		if match(t.rows[i]) {
			out = append(out, *t.rows[i])
		}
	}
	return out
}

func (t *table[T]) sorted(match func(*T) bool, less func(a, b *T) bool) []T {
	out := make([]T, 0)
	for _, row := range t.rows {
		if match(row) {
			out = append(out, *row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func paginate[T any](items []T, page models.PageRequest) ([]T, int64) {
	total := int64(len(items))
	skip := page.Skip()
	if skip < 0 || skip >= total {
		return []T{}, total
	}
	end := total
	if page.Limit > 0 && skip+int64(page.Limit) < total {
		end = skip + int64(page.Limit)
	}
	return items[skip:end], total
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(q))
}

func anyContains(q string, fields ...string) bool {
	for _, f := range fields {
		if contains(f, q) {
			return true
		}
	}
	return false
}

func since(createdAt, from time.Time) bool {
	return from.IsZero() || !createdAt.Before(from)
}

func now() time.Time {
	return time.Now().UTC()
}
