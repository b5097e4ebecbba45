package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{collection: db.Collection(CategoriesCollection)}
}

// Insert crea la categoría; un id o slug repetido devuelve *DuplicateKeyError
func (r *CategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	newObjectID(&c.ObjectID)
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return insertOne(ctx, r.collection, c, "id", "slug")
}

func (r *CategoryRepository) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return findOne[models.Category](ctx, r.collection, bson.M{"_id": id})
}

func (r *CategoryRepository) List(ctx context.Context, f models.CategoryFilter) ([]models.Category, int64, error) {
	return findPage[models.Category](ctx, r.collection, categoryFilter(f), sortByIDAsc, f.PageRequest)
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, u models.CategoryUpdate) (*models.Category, error) {
	set := bson.M{}
	if u.ID != nil {
		set["id"] = *u.ID
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Slug != nil {
		set["slug"] = *u.Slug
	}
	return updateOne[models.Category](ctx, r.collection, bson.M{"_id": id}, set, "id", "slug")
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return deleteOne[models.Category](ctx, r.collection, bson.M{"_id": id})
}

// Count cuenta las categorías creadas desde since (todas si es cero)
func (r *CategoryRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.collection, createdSince(since))
}

func categoryFilter(f models.CategoryFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = anyFieldContains(f.Search, "name", "slug")
	}
	return filter
}
