// Package repository implementa los almacenes del catálogo sobre MongoDB.
package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"storefront/internal/models"
)

const (
	writeTimeout = 5 * time.Second
	findTimeout  = 3 * time.Second
	listTimeout  = 10 * time.Second
)

// Nombres de las colecciones
const (
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	ProgramsCollection   = "programs"
	ServicesCollection   = "services"
	InquiriesCollection  = "inquiries"
	UsersCollection      = "users"
)

var (
	sortByIDAsc          = bson.D{{Key: "id", Value: 1}}
	sortByCreatedAtDesc  = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	returnUpdatedVersion = options.FindOneAndUpdate().SetReturnDocument(options.After)
)

// containsFilter es una búsqueda por subcadena sin distinguir mayúsculas
func containsFilter(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}

func anyFieldContains(q string, fields ...string) []bson.M {
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: containsFilter(q)})
	}
	return or
}

func createdSince(since time.Time) bson.M {
	if since.IsZero() {
		return bson.M{}
	}
	return bson.M{"createdAt": bson.M{"$gte": since}}
}

// findPage ejecuta la consulta paginada y el conteo en paralelo
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, page models.PageRequest) ([]T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	items := make([]T, 0)
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(sort).
			SetSkip(page.Skip()).
			SetLimit(int64(page.Limit))
		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return errors.Wrapf(err, "find %s", coll.Name())
		}
		defer cursor.Close(gctx)
		return errors.Wrapf(cursor.All(gctx, &items), "decode %s", coll.Name())
	})
	g.Go(func() error {
		n, err := coll.CountDocuments(gctx, filter)
		if err != nil {
			return errors.Wrapf(err, "count %s", coll.Name())
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, findTimeout)
	defer cancel()

	var out T
	if err := coll.FindOne(ctx, filter, opts...).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "find one in %s", coll.Name())
	}
	return &out, nil
}

// updateOne aplica $set (más updatedAt) y devuelve el documento resultante
func updateOne[T any](ctx context.Context, coll *mongo.Collection, filter, set bson.M, keys ...string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()

	var out T
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, returnUpdatedVersion).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if dup, ok := duplicateKey(err, keys...); ok {
			return nil, dup
		}
		return nil, errors.Wrapf(err, "update %s", coll.Name())
	}
	return &out, nil
}

func deleteOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var out T
	if err := coll.FindOneAndDelete(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "delete from %s", coll.Name())
	}
	return &out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any, keys ...string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := coll.InsertOne(ctx, doc)
	if err == nil {
		return nil
	}
	if dup, ok := duplicateKey(err, keys...); ok {
		return dup
	}
	return errors.Wrapf(err, "insert into %s", coll.Name())
}

func count(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, filter)
	return n, errors.Wrapf(err, "count %s", coll.Name())
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}

func newObjectID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}
