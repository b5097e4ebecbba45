package catalog

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/slug"
)

// CreatePrograms crea los programas uno a uno. El slug sale de nameEn,
// o de name si no hay, con "program-<millis>" como respaldo.
func (c *Catalog) CreatePrograms(ctx context.Context, items []models.ProgramInput, rejected ...Rejected) *BulkResult[models.ProgramInput, models.Program] {
	return bulkCreate(ctx, "program", items, rejected, c.createProgram)
}

func (c *Catalog) createProgram(ctx context.Context, in models.ProgramInput) (*models.Program, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.NameEn = strings.TrimSpace(in.NameEn)
	in.ProgramImage = strings.TrimSpace(in.ProgramImage)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	p := &models.Program{
		Name:                 in.Name,
		NameEn:               in.NameEn,
		ProgramImage:         in.ProgramImage,
		ShortDescription:     in.ShortDescription,
		FullDescription:      in.FullDescription,
		MainFeatures:         orEmpty(in.MainFeatures),
		SupportedActivities:  orEmpty(in.SupportedActivities),
		SystemRequirements:   in.SystemRequirements,
		Platforms:            orEmpty(in.Platforms),
		IsFree:               deref(in.IsFree, false),
		BasePrice:            in.BasePrice,
		HasSubscription:      deref(in.HasSubscription, false),
		SubscriptionPackages: in.SubscriptionPackages,
		SupportsOffline:      deref(in.SupportsOffline, false),
		Visibility:           deref(in.Visibility, true),
		DownloadLink:         in.DownloadLink,
		DemoLink:             in.DemoLink,
		DocumentationLink:    in.DocumentationLink,
		SupportedLanguages:   in.SupportedLanguages,
		Version:              in.Version,
		LastUpdated:          in.LastUpdated,
	}
	if p.SubscriptionPackages == nil {
		p.SubscriptionPackages = []models.SubscriptionPackage{}
	}
	if len(p.SupportedLanguages) == 0 {
		p.SupportedLanguages = append([]string(nil), models.DefaultSupportedLanguages...)
	}
	if in.CategoryID != "" {
		if err := c.categoryExists(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		oid, _ := primitive.ObjectIDFromHex(in.CategoryID)
		p.CategoryID = &oid
	}

	source := in.NameEn
	if source == "" {
		source = in.Name
	}
	base := slug.WithFallback(source, "program", c.now())
	_, err := slug.Allocate(ctx, base, func(candidate string) error {
		p.Slug = candidate
		return c.programs.Insert(ctx, p)
	}, func(err error) bool { return repository.IsDuplicate(err, "slug") })
	switch {
	case err == nil:
		return p, nil
	case repository.IsDuplicate(err, "name"):
		return nil, conflictf("Program with name '%s' already exists", in.Name)
	case isDuplicate(err):
		return nil, conflictf("Program already exists")
	}
	return nil, err
}

func (c *Catalog) ListPrograms(ctx context.Context, f models.ProgramFilter) ([]models.Program, models.Pagination, error) {
	items, total, err := c.programs.List(ctx, f)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(total, f.PageRequest), nil
}

func (c *Catalog) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	p, err := c.programs.FindByID(ctx, oid)
	return p, notFound(err)
}

func (c *Catalog) UpdateProgram(ctx context.Context, id string, u models.ProgramUpdate) (*models.Program, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return nil, errNoFields
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		u.Name = &name
	}
	if err := validateStruct(u); err != nil {
		return nil, err
	}
	if u.CategoryID != nil {
		if err := c.categoryExists(ctx, *u.CategoryID); err != nil {
			return nil, err
		}
	}

	p, err := c.programs.Update(ctx, oid, u)
	switch {
	case err == nil:
		return p, nil
	case repository.IsDuplicate(err, "name"):
		return nil, conflictf("Program with this name already exists")
	case isDuplicate(err):
		return nil, conflictf("Program already exists")
	}
	return nil, notFound(err)
}

func (c *Catalog) DeleteProgram(ctx context.Context, id string) (*models.Program, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	p, err := c.programs.Delete(ctx, oid)
	return p, notFound(err)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
