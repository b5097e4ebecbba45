// Package database abre la conexión con MongoDB y asegura los índices.
package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"storefront/internal/repository"
)

const connectTimeout = 10 * time.Second

// Connect abre el cliente y comprueba que el servidor responde
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}
	zap.S().Infof("Connected to MongoDB")
	return client, nil
}

func unique(key string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: key, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(key + "_unique"),
	}
}

func ascending(key string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}
}

// Indexes son los índices de cada colección. Los únicos son la garantía de
// "insertar si no existe" y sus nombres los usa el repositorio para saber qué
// clave chocó.
var Indexes = map[string][]mongo.IndexModel{
	repository.CategoriesCollection: {unique("id"), unique("slug")},
	repository.ServicesCollection:   {unique("id"), unique("slug")},
	repository.ProductsCollection: {
		unique("modelNumber"), unique("slug"),
		ascending("categoryId"), ascending("price"), ascending("createdAt"),
	},
	repository.ProgramsCollection: {
		unique("name"), unique("slug"),
		ascending("categoryId"), ascending("isFree"), ascending("platforms"), ascending("visibility"),
	},
	repository.InquiriesCollection: {ascending("createdAt")},
	repository.UsersCollection:     {unique("email"), ascending("role")},
}

// EnsureIndexes crea los índices que falten; es idempotente
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range Indexes {
		ictx, cancel := context.WithTimeout(ctx, connectTimeout)
		created, err := db.Collection(name).Indexes().CreateMany(ictx, models)
		cancel()
		if err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
		zap.S().Debugf("indexes ensured on %s: %v", name, created)
	}
	return nil
}
