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

type ProgramRepository struct {
	collection *mongo.Collection
}

func NewProgramRepository(db *mongo.Database) *ProgramRepository {
	return &ProgramRepository{collection: db.Collection(ProgramsCollection)}
}

func (r *ProgramRepository) Insert(ctx context.Context, p *models.Program) error {
	newObjectID(&p.ID)
	stamp(&p.CreatedAt, &p.UpdatedAt)
	return insertOne(ctx, r.collection, p, "name", "slug")
}

func (r *ProgramRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Program, error) {
	return findOne[models.Program](ctx, r.collection, bson.M{"_id": id})
}

func (r *ProgramRepository) List(ctx context.Context, f models.ProgramFilter) ([]models.Program, int64, error) {
	return findPage[models.Program](ctx, r.collection, programFilter(f), sortByCreatedAtDesc, f.PageRequest)
}

func (r *ProgramRepository) Update(ctx context.Context, id primitive.ObjectID, u models.ProgramUpdate) (*models.Program, error) {
	set, err := programSet(u)
	if err != nil {
		return nil, err
	}
	return updateOne[models.Program](ctx, r.collection, bson.M{"_id": id}, set, "name", "slug")
}

func (r *ProgramRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Program, error) {
	return deleteOne[models.Program](ctx, r.collection, bson.M{"_id": id})
}

func (r *ProgramRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.collection, createdSince(since))
}

func (r *ProgramRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return count(ctx, r.collection, bson.M{"categoryId": categoryID})
}

func (r *ProgramRepository) DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := r.collection.DeleteMany(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return 0, errors.Wrap(err, "delete programs by category")
	}
	return res.DeletedCount, nil
}

func programSet(u models.ProgramUpdate) (bson.M, error) {
	set := bson.M{}
	if u.CategoryID != nil {
		oid, err := primitive.ObjectIDFromHex(*u.CategoryID)
		if err != nil {
			return nil, errors.Wrap(err, "categoryId")
		}
		set["categoryId"] = oid
	}
	texts := map[string]*string{
		"name":              u.Name,
		"nameEn":            u.NameEn,
		"programImage":      u.ProgramImage,
		"shortDescription":  u.ShortDescription,
		"fullDescription":   u.FullDescription,
		"downloadLink":      u.DownloadLink,
		"demoLink":          u.DemoLink,
		"documentationLink": u.DocumentationLink,
		"version":           u.Version,
	}
	for field, v := range texts {
		if v != nil {
			set[field] = *v
		}
	}
	bools := map[string]*bool{
		"isFree":          u.IsFree,
		"hasSubscription": u.HasSubscription,
		"supportsOffline": u.SupportsOffline,
		"visibility":      u.Visibility,
	}
	for field, v := range bools {
		if v != nil {
			set[field] = *v
		}
	}
	lists := map[string][]string{
		"mainFeatures":        u.MainFeatures,
		"supportedActivities": u.SupportedActivities,
		"platforms":           u.Platforms,
		"supportedLanguages":  u.SupportedLanguages,
	}
	for field, v := range lists {
		if v != nil {
			set[field] = v
		}
	}
	if u.SystemRequirements != nil {
		set["systemRequirements"] = u.SystemRequirements
	}
	if u.BasePrice != nil {
		set["basePrice"] = *u.BasePrice
	}
	if u.SubscriptionPackages != nil {
		set["subscriptionPackages"] = u.SubscriptionPackages
	}
	if u.LastUpdated != nil {
		set["lastUpdated"] = *u.LastUpdated
	}
	return set, nil
}

func programFilter(f models.ProgramFilter) bson.M {
	filter := bson.M{}
	if f.CategoryID != nil {
		filter["categoryId"] = *f.CategoryID
	}
	if f.IsFree != nil {
		filter["isFree"] = *f.IsFree
	}
	if f.Platform != "" {
		filter["platforms"] = f.Platform
	}
	if f.Visibility != nil {
		filter["visibility"] = *f.Visibility
	}
	if f.Search != "" {
		filter["$or"] = anyFieldContains(f.Search, "name", "nameEn", "shortDescription")
	}
	return filter
}
