package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type InquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{collection: db.Collection(InquiriesCollection)}
}

func (r *InquiryRepository) Insert(ctx context.Context, i *models.Inquiry) error {
	newObjectID(&i.ID)
	stamp(&i.CreatedAt, &i.UpdatedAt)
	return insertOne(ctx, r.collection, i)
}

func (r *InquiryRepository) List(ctx context.Context, page models.PageRequest) ([]models.Inquiry, int64, error) {
	return findPage[models.Inquiry](ctx, r.collection, bson.M{}, sortByCreatedAtDesc, page)
}

func (r *InquiryRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.collection, createdSince(since))
}
