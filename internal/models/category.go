package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Políticas de borrado de una categoría aún referenciada por productos o programas
const (
	DeleteRestrict = "restrict"
	DeleteCascade  = "cascade"
	DeleteDetach   = "detach"
)

// Category representa una categoría del catálogo.
// ID es el identificador numérico público; ObjectID el del almacén.
type Category struct {
	ObjectID  primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ID        int64              `json:"id" bson:"id"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CategoryInput es un elemento de la creación masiva
type CategoryInput struct {
	ID   int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Name string `json:"name" yaml:"name" validate:"required"`
	Slug string `json:"slug" yaml:"slug" validate:"required"`
}

// CategoryUpdate representa los campos actualizables de una categoría
type CategoryUpdate struct {
	ID   *int64  `json:"id,omitempty" validate:"omitempty,gt=0"`
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,min=1"`
}

func (u CategoryUpdate) IsEmpty() bool {
	return u.ID == nil && u.Name == nil && u.Slug == nil
}

type CategoryFilter struct {
	Search string
	PageRequest
}
