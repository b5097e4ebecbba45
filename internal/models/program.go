package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plataformas admitidas para un programa
var Platforms = []string{"Windows", "Android", "iOS", "macOS", "Linux", "Web"}

// DefaultSupportedLanguages se asigna cuando no se indica ningún idioma
var DefaultSupportedLanguages = []string{"العربية"}

type SubscriptionPackage struct {
	Name      string   `json:"name" bson:"name" yaml:"name" validate:"required"`
	NameEn    string   `json:"nameEn,omitempty" bson:"nameEn,omitempty" yaml:"nameEn"`
	Price     *float64 `json:"price" bson:"price" yaml:"price" validate:"required,gte=0"`
	Duration  int      `json:"duration" bson:"duration" yaml:"duration" validate:"gte=1"` // meses
	Features  []string `json:"features" bson:"features" yaml:"features" validate:"required"`
	IsPopular bool     `json:"isPopular" bson:"isPopular" yaml:"isPopular"`
}

type SystemRequirements struct {
	OS              []string `json:"os" bson:"os" yaml:"os" validate:"required"`
	Processor       string   `json:"processor,omitempty" bson:"processor,omitempty" yaml:"processor"`
	RAM             string   `json:"ram,omitempty" bson:"ram,omitempty" yaml:"ram"`
	Storage         string   `json:"storage,omitempty" bson:"storage,omitempty" yaml:"storage"`
	AdditionalNotes string   `json:"additionalNotes,omitempty" bson:"additionalNotes,omitempty" yaml:"additionalNotes"`
}

// Program representa un programa (software) del catálogo
type Program struct {
	ID                   primitive.ObjectID    `json:"_id" bson:"_id,omitempty"`
	Name                 string                `json:"name" bson:"name"`
	NameEn               string                `json:"nameEn,omitempty" bson:"nameEn,omitempty"`
	Slug                 string                `json:"slug" bson:"slug"`
	ProgramImage         string                `json:"programImage" bson:"programImage"`
	ShortDescription     string                `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`
	FullDescription      string                `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	MainFeatures         []string              `json:"mainFeatures" bson:"mainFeatures"`
	SupportedActivities  []string              `json:"supportedActivities" bson:"supportedActivities"`
	SystemRequirements   *SystemRequirements   `json:"systemRequirements,omitempty" bson:"systemRequirements,omitempty"`
	Platforms            []string              `json:"platforms" bson:"platforms"`
	IsFree               bool                  `json:"isFree" bson:"isFree"`
	BasePrice            *float64              `json:"basePrice,omitempty" bson:"basePrice,omitempty"`
	HasSubscription      bool                  `json:"hasSubscription" bson:"hasSubscription"`
	SubscriptionPackages []SubscriptionPackage `json:"subscriptionPackages" bson:"subscriptionPackages"`
	SupportsOffline      bool                  `json:"supportsOffline" bson:"supportsOffline"`
	CategoryID           *primitive.ObjectID   `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	Visibility           bool                  `json:"visibility" bson:"visibility"`
	DownloadLink         string                `json:"downloadLink,omitempty" bson:"downloadLink,omitempty"`
	DemoLink             string                `json:"demoLink,omitempty" bson:"demoLink,omitempty"`
	DocumentationLink    string                `json:"documentationLink,omitempty" bson:"documentationLink,omitempty"`
	SupportedLanguages   []string              `json:"supportedLanguages" bson:"supportedLanguages"`
	Version              string                `json:"version,omitempty" bson:"version,omitempty"`
	LastUpdated          *time.Time            `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
	CreatedAt            time.Time             `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt" bson:"updatedAt"`
}

type ProgramInput struct {
	Name                 string                `json:"name" yaml:"name" validate:"required"`
	NameEn               string                `json:"nameEn,omitempty" yaml:"nameEn"`
	ProgramImage         string                `json:"programImage" yaml:"programImage" validate:"required"`
	ShortDescription     string                `json:"shortDescription,omitempty" yaml:"shortDescription" validate:"max=500"`
	FullDescription      string                `json:"fullDescription,omitempty" yaml:"fullDescription"`
	MainFeatures         []string              `json:"mainFeatures,omitempty" yaml:"mainFeatures"`
	SupportedActivities  []string              `json:"supportedActivities,omitempty" yaml:"supportedActivities"`
	SystemRequirements   *SystemRequirements   `json:"systemRequirements,omitempty" yaml:"systemRequirements" validate:"omitempty"`
	Platforms            []string              `json:"platforms,omitempty" yaml:"platforms" validate:"omitempty,dive,oneof=Windows Android iOS macOS Linux Web"`
	IsFree               *bool                 `json:"isFree,omitempty" yaml:"isFree"`
	BasePrice            *float64              `json:"basePrice,omitempty" yaml:"basePrice" validate:"omitempty,gte=0"`
	HasSubscription      *bool                 `json:"hasSubscription,omitempty" yaml:"hasSubscription"`
	SubscriptionPackages []SubscriptionPackage `json:"subscriptionPackages,omitempty" yaml:"subscriptionPackages" validate:"omitempty,dive"`
	SupportsOffline      *bool                 `json:"supportsOffline,omitempty" yaml:"supportsOffline"`
	CategoryID           string                `json:"categoryId,omitempty" yaml:"categoryId" validate:"omitempty,mongodb"`
	Visibility           *bool                 `json:"visibility,omitempty" yaml:"visibility"`
	DownloadLink         string                `json:"downloadLink,omitempty" yaml:"downloadLink"`
	DemoLink             string                `json:"demoLink,omitempty" yaml:"demoLink"`
	DocumentationLink    string                `json:"documentationLink,omitempty" yaml:"documentationLink"`
	SupportedLanguages   []string              `json:"supportedLanguages,omitempty" yaml:"supportedLanguages"`
	Version              string                `json:"version,omitempty" yaml:"version"`
	LastUpdated          *time.Time            `json:"lastUpdated,omitempty" yaml:"lastUpdated"`
}

// ProgramUpdate representa los campos actualizables de un programa.
// El slug no se regenera al cambiar el nombre.
type ProgramUpdate struct {
	Name                 *string               `json:"name,omitempty" validate:"omitempty,min=1"`
	NameEn               *string               `json:"nameEn,omitempty"`
	ProgramImage         *string               `json:"programImage,omitempty" validate:"omitempty,min=1"`
	ShortDescription     *string               `json:"shortDescription,omitempty" validate:"omitempty,max=500"`
	FullDescription      *string               `json:"fullDescription,omitempty"`
	MainFeatures         []string              `json:"mainFeatures,omitempty"`
	SupportedActivities  []string              `json:"supportedActivities,omitempty"`
	SystemRequirements   *SystemRequirements   `json:"systemRequirements,omitempty" validate:"omitempty"`
	Platforms            []string              `json:"platforms,omitempty" validate:"omitempty,dive,oneof=Windows Android iOS macOS Linux Web"`
	IsFree               *bool                 `json:"isFree,omitempty"`
	BasePrice            *float64              `json:"basePrice,omitempty" validate:"omitempty,gte=0"`
	HasSubscription      *bool                 `json:"hasSubscription,omitempty"`
	SubscriptionPackages []SubscriptionPackage `json:"subscriptionPackages,omitempty" validate:"omitempty,dive"`
	SupportsOffline      *bool                 `json:"supportsOffline,omitempty"`
	CategoryID           *string               `json:"categoryId,omitempty" validate:"omitempty,mongodb"`
	Visibility           *bool                 `json:"visibility,omitempty"`
	DownloadLink         *string               `json:"downloadLink,omitempty"`
	DemoLink             *string               `json:"demoLink,omitempty"`
	DocumentationLink    *string               `json:"documentationLink,omitempty"`
	SupportedLanguages   []string              `json:"supportedLanguages,omitempty"`
	Version              *string               `json:"version,omitempty"`
	LastUpdated          *time.Time            `json:"lastUpdated,omitempty"`
}

func (u ProgramUpdate) IsEmpty() bool {
	return u.Name == nil && u.NameEn == nil && u.ProgramImage == nil && u.ShortDescription == nil &&
		u.FullDescription == nil && u.MainFeatures == nil && u.SupportedActivities == nil &&
		u.SystemRequirements == nil && u.Platforms == nil && u.IsFree == nil && u.BasePrice == nil &&
		u.HasSubscription == nil && u.SubscriptionPackages == nil && u.SupportsOffline == nil &&
		u.CategoryID == nil && u.Visibility == nil && u.DownloadLink == nil && u.DemoLink == nil &&
		u.DocumentationLink == nil && u.SupportedLanguages == nil && u.Version == nil && u.LastUpdated == nil
}

type ProgramFilter struct {
	CategoryID *primitive.ObjectID
	IsFree     *bool
	Platform   string
	Search     string
	Visibility *bool
	PageRequest
}
