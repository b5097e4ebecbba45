package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection(ProductsCollection)}
}

// Insert crea un producto; modelNumber y slug son únicos
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	newObjectID(&p.ID)
	stamp(&p.CreatedAt, &p.UpdatedAt)
	return insertOne(ctx, r.collection, p, "modelNumber", "slug")
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return findOne[models.Product](ctx, r.collection, bson.M{"_id": id})
}

// List lista productos con paginación y filtros
func (r *ProductRepository) List(ctx context.Context, f models.ProductFilter) ([]models.Product, int64, error) {
	return findPage[models.Product](ctx, r.collection, productFilter(f), sortByCreatedAtDesc, f.PageRequest)
}

// Update actualiza parcialmente un producto
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, u models.ProductUpdate) (*models.Product, error) {
	set := bson.M{}
	if u.CategoryID != nil {
		oid, err := primitive.ObjectIDFromHex(*u.CategoryID)
		if err != nil {
			return nil, errors.Wrap(err, "categoryId")
		}
		set["categoryId"] = oid
	}
	if u.ModelNumber != nil {
		set["modelNumber"] = *u.ModelNumber
	}
	if u.ProductImage != nil {
		set["productImage"] = *u.ProductImage
	}
	if u.ProductSpecs != nil {
		set["productSpecs"] = u.ProductSpecs
	}
	if u.ProductDescription != nil {
		set["productDescription"] = *u.ProductDescription
	}
	if u.Quantity != nil {
		set["quantity"] = *u.Quantity
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.MSRPPrice != nil {
		set["msrpPrice"] = *u.MSRPPrice
	}
	if u.DPPPrice != nil {
		set["dppPrice"] = *u.DPPPrice
	}
	if u.Visibility != nil {
		set["visibility"] = *u.Visibility
	}
	return updateOne[models.Product](ctx, r.collection, bson.M{"_id": id}, set, "modelNumber", "slug")
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return deleteOne[models.Product](ctx, r.collection, bson.M{"_id": id})
}

func (r *ProductRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.collection, createdSince(since))
}

// CountLowStock cuenta los productos con quantity < threshold
func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	return count(ctx, r.collection, bson.M{"quantity": bson.M{"$lt": threshold}})
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return count(ctx, r.collection, bson.M{"categoryId": categoryID})
}

func (r *ProductRepository) DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := r.collection.DeleteMany(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return 0, errors.Wrap(err, "delete products by category")
	}
	return res.DeletedCount, nil
}

// productFilter construye el filtro de MongoDB a partir de ProductFilter
func productFilter(f models.ProductFilter) bson.M {
	filter := bson.M{}

	if f.CategoryID != nil {
		filter["categoryId"] = *f.CategoryID
	}

	priceFilter := bson.M{}
	if f.MinPrice != nil {
		priceFilter["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		priceFilter["$lte"] = *f.MaxPrice
	}
	if len(priceFilter) > 0 {
		filter["price"] = priceFilter
	}

	if f.Visibility != nil {
		filter["visibility"] = *f.Visibility
	}

	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"modelNumber": containsFilter(f.Search)},
			{"productSpecs": bson.M{"$elemMatch": containsFilter(f.Search)}},
		}
	}

	return filter
}
