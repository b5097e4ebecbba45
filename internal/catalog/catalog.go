// Package catalog contiene las reglas del catálogo: validación, creación
// masiva, slugs únicos, política de borrado de categorías y estadísticas.
package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/cache"
	"storefront/internal/models"
)

type CategoryStore interface {
	Insert(ctx context.Context, c *models.Category) error
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	List(ctx context.Context, f models.CategoryFilter) ([]models.Category, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, u models.CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Count(ctx context.Context, since time.Time) (int64, error)
}

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, f models.ProductFilter) ([]models.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, u models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Count(ctx context.Context, since time.Time) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type ProgramStore interface {
	Insert(ctx context.Context, p *models.Program) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Program, error)
	List(ctx context.Context, f models.ProgramFilter) ([]models.Program, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, u models.ProgramUpdate) (*models.Program, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Program, error)
	Count(ctx context.Context, since time.Time) (int64, error)
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type ServiceStore interface {
	Insert(ctx context.Context, s *models.Service) error
	FindByID(ctx context.Context, id int64) (*models.Service, error)
	List(ctx context.Context, f models.ServiceFilter) ([]models.Service, int64, error)
	Update(ctx context.Context, id int64, u models.ServiceUpdate) (*models.Service, error)
	Delete(ctx context.Context, id int64) (*models.Service, error)
	Count(ctx context.Context, since time.Time) (int64, error)
}

type InquiryStore interface {
	Insert(ctx context.Context, i *models.Inquiry) error
	List(ctx context.Context, page models.PageRequest) ([]models.Inquiry, int64, error)
	Count(ctx context.Context, since time.Time) (int64, error)
}

// Stores reúne los almacenes que usa el catálogo
type Stores struct {
	Categories CategoryStore
	Products   ProductStore
	Programs   ProgramStore
	Services   ServiceStore
	Inquiries  InquiryStore
}

type Catalog struct {
	categories CategoryStore
	products   ProductStore
	programs   ProgramStore
	services   ServiceStore
	inquiries  InquiryStore

	cache        *cache.Cache
	deletePolicy string
	now          func() time.Time
}

type Option func(*Catalog)

// WithCache sirve los listados de categorías y servicios desde c
func WithCache(c *cache.Cache) Option {
	return func(cat *Catalog) { cat.cache = c }
}

func WithDeletePolicy(policy string) Option {
	return func(cat *Catalog) { cat.deletePolicy = policy }
}

// WithClock fija el reloj usado para slugs de respaldo y estadísticas
func WithClock(now func() time.Time) Option {
	return func(cat *Catalog) { cat.now = now }
}

func New(stores Stores, opts ...Option) *Catalog {
	c := &Catalog{
		categories:   stores.Categories,
		products:     stores.Products,
		programs:     stores.Programs,
		services:     stores.Services,
		inquiries:    stores.Inquiries,
		deletePolicy: models.DeleteRestrict,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) invalidate(prefix string) {
	if c.cache != nil {
		c.cache.DeleteByPrefix(prefix)
	}
}

type cachedPage[T any] struct {
	items []T
	total int64
}

// cachedList sirve la página desde la caché o la carga con load
func cachedList[T any](c *Catalog, key string, load func() ([]T, int64, error)) ([]T, int64, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			if page, ok := v.(cachedPage[T]); ok {
				return page.items, page.total, nil
			}
		}
	}
	items, total, err := load()
	if err != nil {
		return nil, 0, err
	}
	if c.cache != nil {
		c.cache.Set(key, cachedPage[T]{items: items, total: total})
	}
	return items, total, nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
