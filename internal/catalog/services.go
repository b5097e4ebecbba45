package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"
)

const serviceCachePrefix = "services:"

// CreateServices crea los servicios una a una
func (c *Catalog) CreateServices(ctx context.Context, items []models.ServiceInput, rejected ...Rejected) *BulkResult[models.ServiceInput, models.Service] {
	res := bulkCreate(ctx, "service", items, rejected, c.createService)
	if len(res.Created) > 0 {
		c.invalidate(serviceCachePrefix)
	}
	return res
}

func (c *Catalog) createService(ctx context.Context, in models.ServiceInput) (*models.Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	svc := &models.Service{ID: in.ID, Name: in.Name, Image: in.Image, Slug: in.Slug}
	err := c.services.Insert(ctx, svc)
	switch {
	case err == nil:
		return svc, nil
	case repository.IsDuplicate(err, "id"):
		return nil, conflictf("Service with id %d already exists", in.ID)
	case repository.IsDuplicate(err, "slug"):
		return nil, conflictf("Service with slug '%s' already exists", in.Slug)
	case isDuplicate(err):
		return nil, conflictf("Service already exists")
	}
	return nil, err
}

func (c *Catalog) ListServices(ctx context.Context, f models.ServiceFilter) ([]models.Service, models.Pagination, error) {
	key := fmt.Sprintf("%slist:%s:%d:%d", serviceCachePrefix, f.Search, f.Page, f.Limit)
	items, total, err := cachedList(c, key, func() ([]models.Service, int64, error) {
		return c.services.List(ctx, f)
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(total, f.PageRequest), nil
}

// parseServiceID acepta solo enteros positivos
func parseServiceID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

func (c *Catalog) GetService(ctx context.Context, id string) (*models.Service, error) {
	n, err := parseServiceID(id)
	if err != nil {
		return nil, err
	}
	svc, err := c.services.FindByID(ctx, n)
	return svc, notFound(err)
}

func (c *Catalog) UpdateService(ctx context.Context, id string, u models.ServiceUpdate) (*models.Service, error) {
	n, err := parseServiceID(id)
	if err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return nil, errNoFields
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		u.Name = &name
	}
	if u.Slug != nil {
		s := strings.ToLower(strings.TrimSpace(*u.Slug))
		u.Slug = &s
	}
	if err := validateStruct(u); err != nil {
		return nil, err
	}

	svc, err := c.services.Update(ctx, n, u)
	if err == nil {
		c.invalidate(serviceCachePrefix)
		return svc, nil
	}
	switch {
	case repository.IsDuplicate(err, "slug") && u.Slug != nil:
		return nil, conflictf("Service with slug '%s' already exists", *u.Slug)
	case isDuplicate(err):
		return nil, conflictf("Service already exists")
	}
	return nil, notFound(err)
}

func (c *Catalog) DeleteService(ctx context.Context, id string) (*models.Service, error) {
	n, err := parseServiceID(id)
	if err != nil {
		return nil, err
	}
	svc, err := c.services.Delete(ctx, n)
	if err != nil {
		return nil, notFound(err)
	}
	c.invalidate(serviceCachePrefix)
	return svc, nil
}
