package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// withoutPassword es la proyección por defecto de las lecturas de usuarios
var withoutPassword = options.FindOne().SetProjection(bson.M{"password": 0})

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(UsersCollection)}
}

// Insert espera el password ya cifrado; un email repetido devuelve *DuplicateKeyError
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	newObjectID(&u.ID)
	stamp(&u.CreatedAt, &u.UpdatedAt)
	return insertOne(ctx, r.collection, u, "email")
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"_id": id}, withoutPassword)
}

// FindByEmail busca por email; solo incluye el hash si withPassword es true
func (r *UserRepository) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	if withPassword {
		return findOne[models.User](ctx, r.collection, bson.M{"email": email})
	}
	return findOne[models.User](ctx, r.collection, bson.M{"email": email}, withoutPassword)
}

// SetCredentials reemplaza el hash y el rol de un usuario existente
func (r *UserRepository) SetCredentials(ctx context.Context, id primitive.ObjectID, passwordHash string, role models.Role) error {
	_, err := updateOne[models.User](ctx, r.collection, bson.M{"_id": id},
		bson.M{"password": passwordHash, "role": role})
	return err
}
