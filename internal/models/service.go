package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service es un servicio ofrecido; se direcciona por su ID numérico
type Service struct {
	ObjectID  primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ID        int64              `json:"id" bson:"id"`
	Name      string             `json:"name" bson:"name"`
	Image     string             `json:"image" bson:"image"`
	Slug      string             `json:"slug" bson:"slug"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ServiceInput struct {
	ID    int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Name  string `json:"name" yaml:"name" validate:"required"`
	Image string `json:"image" yaml:"image" validate:"required"`
	Slug  string `json:"slug" yaml:"slug" validate:"required"`
}

type ServiceUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Image *string `json:"image,omitempty" validate:"omitempty,min=1"`
	Slug  *string `json:"slug,omitempty" validate:"omitempty,min=1"`
}

func (u ServiceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Image == nil && u.Slug == nil
}

type ServiceFilter struct {
	Search string
	PageRequest
}
