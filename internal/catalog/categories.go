package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"
)

const categoryCachePrefix = "categories:"

// CreateCategories crea las categorías una a una
func (c *Catalog) CreateCategories(ctx context.Context, items []models.CategoryInput, rejected ...Rejected) *BulkResult[models.CategoryInput, models.Category] {
	res := bulkCreate(ctx, "category", items, rejected, c.createCategory)
	if len(res.Created) > 0 {
		c.invalidate(categoryCachePrefix)
	}
	return res
}

func (c *Catalog) createCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	cat := &models.Category{ID: in.ID, Name: in.Name, Slug: in.Slug}
	err := c.categories.Insert(ctx, cat)
	switch {
	case err == nil:
		return cat, nil
	case repository.IsDuplicate(err, "id"):
		return nil, conflictf("Category with id %d already exists", in.ID)
	case repository.IsDuplicate(err, "slug"):
		return nil, conflictf("Category with slug '%s' already exists", in.Slug)
	case isDuplicate(err):
		return nil, conflictf("Category already exists")
	}
	return nil, err
}

func (c *Catalog) ListCategories(ctx context.Context, f models.CategoryFilter) ([]models.Category, models.Pagination, error) {
	key := fmt.Sprintf("%slist:%s:%d:%d", categoryCachePrefix, f.Search, f.Page, f.Limit)
	items, total, err := cachedList(c, key, func() ([]models.Category, int64, error) {
		return c.categories.List(ctx, f)
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(total, f.PageRequest), nil
}

func (c *Catalog) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	cat, err := c.categories.FindByObjectID(ctx, oid)
	return cat, notFound(err)
}

func (c *Catalog) UpdateCategory(ctx context.Context, id string, u models.CategoryUpdate) (*models.Category, error) {
	oid, err := parseObjectID(id)
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

	cat, err := c.categories.Update(ctx, oid, u)
	switch {
	case err == nil:
		c.invalidate(categoryCachePrefix)
		return cat, nil
	case repository.IsDuplicate(err, "id"):
		return nil, conflictf("Category with this id already exists")
	case repository.IsDuplicate(err, "slug"):
		return nil, conflictf("Category with this slug already exists")
	case isDuplicate(err):
		return nil, conflictf("Category already exists")
	}
	return nil, notFound(err)
}

// DeleteCategory borra la categoría según la política configurada:
// restrict la rechaza si aún tiene productos o programas, cascade los
// borra antes y detach deja las referencias colgando.
func (c *Catalog) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if _, err := c.categories.FindByObjectID(ctx, oid); err != nil {
		return nil, notFound(err)
	}

	switch c.deletePolicy {
	case models.DeleteCascade:
		if _, err := c.products.DeleteByCategory(ctx, oid); err != nil {
			return nil, err
		}
		if _, err := c.programs.DeleteByCategory(ctx, oid); err != nil {
			return nil, err
		}
	case models.DeleteDetach:
	default:
		products, err := c.products.CountByCategory(ctx, oid)
		if err != nil {
			return nil, err
		}
		programs, err := c.programs.CountByCategory(ctx, oid)
		if err != nil {
			return nil, err
		}
		if products > 0 || programs > 0 {
			return nil, conflictf("Category is still referenced by %d products and %d programs", products, programs)
		}
	}

	cat, err := c.categories.Delete(ctx, oid)
	if err != nil {
		return nil, notFound(err)
	}
	c.invalidate(categoryCachePrefix)
	return cat, nil
}

// categoryExists comprueba la referencia de un producto o programa
func (c *Catalog) categoryExists(ctx context.Context, hex string) error {
	oid, err := parseObjectID(hex)
	if err != nil {
		return &ValidationError{Field: "categoryId", Message: "Invalid categoryId format"}
	}
	if _, err := c.categories.FindByObjectID(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{Field: "categoryId", Message: fmt.Sprintf("Category %s does not exist", hex)}
		}
		return err
	}
	return nil
}
