package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

// ServiceRepository guarda los servicios, direccionados por su id numérico
type ServiceRepository struct {
	collection *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{collection: db.Collection(ServicesCollection)}
}

func (r *ServiceRepository) Insert(ctx context.Context, s *models.Service) error {
	newObjectID(&s.ObjectID)
	stamp(&s.CreatedAt, &s.UpdatedAt)
	return insertOne(ctx, r.collection, s, "id", "slug")
}

func (r *ServiceRepository) FindByID(ctx context.Context, id int64) (*models.Service, error) {
	return findOne[models.Service](ctx, r.collection, bson.M{"id": id})
}

func (r *ServiceRepository) List(ctx context.Context, f models.ServiceFilter) ([]models.Service, int64, error) {
	return findPage[models.Service](ctx, r.collection, serviceFilter(f), sortByIDAsc, f.PageRequest)
}

func (r *ServiceRepository) Update(ctx context.Context, id int64, u models.ServiceUpdate) (*models.Service, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Slug != nil {
		set["slug"] = *u.Slug
	}
	return updateOne[models.Service](ctx, r.collection, bson.M{"id": id}, set, "slug")
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) (*models.Service, error) {
	return deleteOne[models.Service](ctx, r.collection, bson.M{"id": id})
}

func (r *ServiceRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.collection, createdSince(since))
}

func serviceFilter(f models.ServiceFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = anyFieldContains(f.Search, "name", "slug")
	}
	return filter
}
