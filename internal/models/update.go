package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ApplyTo copia en c los campos presentes en la actualización
func (u CategoryUpdate) ApplyTo(c *Category) {
	if u.ID != nil {
		c.ID = *u.ID
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Slug != nil {
		c.Slug = *u.Slug
	}
}

func (u ServiceUpdate) ApplyTo(s *Service) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Image != nil {
		s.Image = *u.Image
	}
	if u.Slug != nil {
		s.Slug = *u.Slug
	}
}

func (u ProductUpdate) ApplyTo(p *Product) error {
	if u.CategoryID != nil {
		oid, err := primitive.ObjectIDFromHex(*u.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID = oid
	}
	if u.ModelNumber != nil {
		p.ModelNumber = *u.ModelNumber
	}
	if u.ProductImage != nil {
		p.ProductImage = *u.ProductImage
	}
	if u.ProductSpecs != nil {
		p.ProductSpecs = u.ProductSpecs
	}
	if u.ProductDescription != nil {
		p.ProductDescription = *u.ProductDescription
	}
	if u.Quantity != nil {
		p.Quantity = *u.Quantity
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.MSRPPrice != nil {
		p.MSRPPrice = u.MSRPPrice
	}
	if u.DPPPrice != nil {
		p.DPPPrice = u.DPPPrice
	}
	if u.Visibility != nil {
		p.Visibility = *u.Visibility
	}
	return nil
}

func (u ProgramUpdate) ApplyTo(p *Program) error {
	if u.CategoryID != nil {
		oid, err := primitive.ObjectIDFromHex(*u.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID = &oid
	}
	setString(&p.Name, u.Name)
	setString(&p.NameEn, u.NameEn)
	setString(&p.ProgramImage, u.ProgramImage)
	setString(&p.ShortDescription, u.ShortDescription)
	setString(&p.FullDescription, u.FullDescription)
	setString(&p.DownloadLink, u.DownloadLink)
	setString(&p.DemoLink, u.DemoLink)
	setString(&p.DocumentationLink, u.DocumentationLink)
	setString(&p.Version, u.Version)
	setBool(&p.IsFree, u.IsFree)
	setBool(&p.HasSubscription, u.HasSubscription)
	setBool(&p.SupportsOffline, u.SupportsOffline)
	setBool(&p.Visibility, u.Visibility)
	if u.MainFeatures != nil {
		p.MainFeatures = u.MainFeatures
	}
	if u.SupportedActivities != nil {
		p.SupportedActivities = u.SupportedActivities
	}
	if u.SystemRequirements != nil {
		p.SystemRequirements = u.SystemRequirements
	}
	if u.Platforms != nil {
		p.Platforms = u.Platforms
	}
	if u.BasePrice != nil {
		p.BasePrice = u.BasePrice
	}
	if u.SubscriptionPackages != nil {
		p.SubscriptionPackages = u.SubscriptionPackages
	}
	if u.SupportedLanguages != nil {
		p.SupportedLanguages = u.SupportedLanguages
	}
	if u.LastUpdated != nil {
		p.LastUpdated = u.LastUpdated
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
