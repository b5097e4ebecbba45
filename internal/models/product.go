package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto en el catálogo
type Product struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ModelNumber        string             `json:"modelNumber" bson:"modelNumber"`
	ProductImage       string             `json:"productImage" bson:"productImage"`
	Slug               string             `json:"slug" bson:"slug"`
	ProductSpecs       []string           `json:"productSpecs" bson:"productSpecs"`
	ProductDescription string             `json:"productDescription,omitempty" bson:"productDescription,omitempty"`
	Quantity           int                `json:"quantity" bson:"quantity"`
	Price              float64            `json:"price" bson:"price"`
	MSRPPrice          *float64           `json:"msrpPrice,omitempty" bson:"msrpPrice,omitempty"`
	DPPPrice           *float64           `json:"dppPrice,omitempty" bson:"dppPrice,omitempty"`
	CategoryID         primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	Visibility         bool               `json:"visibility" bson:"visibility"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductInput es un elemento de la creación masiva.
// Se exige productSpecs no vacío o productDescription.
type ProductInput struct {
	ModelNumber        string   `json:"modelNumber" yaml:"modelNumber" validate:"required"`
	ProductImage       string   `json:"productImage" yaml:"productImage" validate:"required"`
	ProductSpecs       []string `json:"productSpecs,omitempty" yaml:"productSpecs" validate:"omitempty,dive,required"`
	ProductDescription string   `json:"productDescription,omitempty" yaml:"productDescription"`
	Quantity           *int     `json:"quantity" yaml:"quantity" validate:"required,gte=0"`
	Price              *float64 `json:"price" yaml:"price" validate:"required,gte=0"`
	MSRPPrice          *float64 `json:"msrpPrice,omitempty" yaml:"msrpPrice" validate:"omitempty,gte=0"`
	DPPPrice           *float64 `json:"dppPrice,omitempty" yaml:"dppPrice" validate:"omitempty,gte=0"`
	CategoryID         string   `json:"categoryId" yaml:"categoryId" validate:"required,mongodb"`
	Visibility         *bool    `json:"visibility,omitempty" yaml:"visibility"`
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	ModelNumber        *string  `json:"modelNumber,omitempty" validate:"omitempty,min=1"`
	ProductImage       *string  `json:"productImage,omitempty" validate:"omitempty,min=1"`
	ProductSpecs       []string `json:"productSpecs,omitempty" validate:"omitempty,dive,required"`
	ProductDescription *string  `json:"productDescription,omitempty"`
	Quantity           *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	MSRPPrice          *float64 `json:"msrpPrice,omitempty" validate:"omitempty,gte=0"`
	DPPPrice           *float64 `json:"dppPrice,omitempty" validate:"omitempty,gte=0"`
	CategoryID         *string  `json:"categoryId,omitempty" validate:"omitempty,mongodb"`
	Visibility         *bool    `json:"visibility,omitempty"`
}

func (u ProductUpdate) IsEmpty() bool {
	return u.ModelNumber == nil && u.ProductImage == nil && u.ProductSpecs == nil &&
		u.ProductDescription == nil && u.Quantity == nil && u.Price == nil &&
		u.MSRPPrice == nil && u.DPPPrice == nil && u.CategoryID == nil && u.Visibility == nil
}

type ProductFilter struct {
	CategoryID *primitive.ObjectID
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Visibility *bool
	PageRequest
}
