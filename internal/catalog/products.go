package catalog

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/slug"
)

// LowStockThreshold marca como stock bajo las cantidades inferiores
const LowStockThreshold = 10

// CreateProducts crea los productos uno a uno. El slug se deriva del
// número de modelo y recibe un sufijo si ya está ocupado.
func (c *Catalog) CreateProducts(ctx context.Context, items []models.ProductInput, rejected ...Rejected) *BulkResult[models.ProductInput, models.Product] {
	return bulkCreate(ctx, "product", items, rejected, c.createProduct)
}

func (c *Catalog) createProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	in.ModelNumber = strings.TrimSpace(in.ModelNumber)
	in.ProductImage = strings.TrimSpace(in.ProductImage)
	in.ProductDescription = strings.TrimSpace(in.ProductDescription)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.ProductSpecs) == 0 && in.ProductDescription == "" {
		return nil, &ValidationError{
			Field:   "productSpecs",
			Message: "Missing required fields: productSpecs or productDescription",
		}
	}
	if err := c.categoryExists(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	categoryID, _ := primitive.ObjectIDFromHex(in.CategoryID)

	p := &models.Product{
		ModelNumber:        in.ModelNumber,
		ProductImage:       in.ProductImage,
		ProductSpecs:       in.ProductSpecs,
		ProductDescription: in.ProductDescription,
		Quantity:           *in.Quantity,
		Price:              *in.Price,
		MSRPPrice:          in.MSRPPrice,
		DPPPrice:           in.DPPPrice,
		CategoryID:         categoryID,
		Visibility:         true,
	}
	if p.ProductSpecs == nil {
		p.ProductSpecs = []string{}
	}
	if in.Visibility != nil {
		p.Visibility = *in.Visibility
	}

	base := slug.WithFallback(in.ModelNumber, "product", c.now())
	_, err := slug.Allocate(ctx, base, func(candidate string) error {
		p.Slug = candidate
		return c.products.Insert(ctx, p)
	}, func(err error) bool { return repository.IsDuplicate(err, "slug") })
	switch {
	case err == nil:
		return p, nil
	case repository.IsDuplicate(err, "modelNumber"):
		return nil, conflictf("Product with model number '%s' already exists", in.ModelNumber)
	case isDuplicate(err):
		return nil, conflictf("Product already exists")
	}
	return nil, err
}

func (c *Catalog) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, models.Pagination, error) {
	items, total, err := c.products.List(ctx, f)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(total, f.PageRequest), nil
}

func (c *Catalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	p, err := c.products.FindByID(ctx, oid)
	return p, notFound(err)
}

// UpdateProduct aplica una actualización parcial. El slug no cambia.
func (c *Catalog) UpdateProduct(ctx context.Context, id string, u models.ProductUpdate) (*models.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return nil, errNoFields
	}
	if u.ModelNumber != nil {
		m := strings.TrimSpace(*u.ModelNumber)
		u.ModelNumber = &m
	}
	if err := validateStruct(u); err != nil {
		return nil, err
	}
	if u.CategoryID != nil {
		if err := c.categoryExists(ctx, *u.CategoryID); err != nil {
			return nil, err
		}
	}

	p, err := c.products.Update(ctx, oid, u)
	switch {
	case err == nil:
		return p, nil
	case repository.IsDuplicate(err, "modelNumber"):
		return nil, conflictf("Product with this model number already exists")
	case isDuplicate(err):
		return nil, conflictf("Product already exists")
	}
	return nil, notFound(err)
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	p, err := c.products.Delete(ctx, oid)
	return p, notFound(err)
}
