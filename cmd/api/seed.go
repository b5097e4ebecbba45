package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/models"
)

// seedFile es el formato YAML de "storefront seed". Los productos y
// programas pueden referirse a su categoría por slug.
type seedFile struct {
	Categories []models.CategoryInput `yaml:"categories"`
	Services   []models.ServiceInput  `yaml:"services"`
	Products   []seedProduct          `yaml:"products"`
	Programs   []seedProgram          `yaml:"programs"`
}

type seedProduct struct {
	models.ProductInput `yaml:",inline"`
	CategorySlug        string `yaml:"categorySlug"`
}

type seedProgram struct {
	models.ProgramInput `yaml:",inline"`
	CategorySlug        string `yaml:"categorySlug"`
}

func newSeedCommand(getConfig func() *config.Config) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Bulk-create catalog entries from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return errors.Wrap(err, "read seed file")
			}
			var seed seedFile
			if err := yaml.Unmarshal(data, &seed); err != nil {
				return errors.Wrap(err, "parse seed file")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, getConfig())
			if err != nil {
				return err
			}
			defer a.close(context.Background())
			return runSeed(ctx, a.catalog, seed, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "YAML file with categories, services, products and programs")
	return cmd
}

// runSeed crea primero categorías y servicios, después resuelve los slugs
// de categoría y crea productos y programas por la misma vía que la API.
func runSeed(ctx context.Context, cat *catalog.Catalog, seed seedFile, out io.Writer) error {
	if len(seed.Categories) > 0 {
		res := cat.CreateCategories(ctx, seed.Categories)
		report(out, "categories", res.Summary(), failures(res.Failed))
	}
	if len(seed.Services) > 0 {
		res := cat.CreateServices(ctx, seed.Services)
		report(out, "services", res.Summary(), failures(res.Failed))
	}

	slugs, err := categoryIDsBySlug(ctx, cat)
	if err != nil {
		return err
	}

	if len(seed.Products) > 0 {
		items := make([]models.ProductInput, 0, len(seed.Products))
		for _, p := range seed.Products {
			if p.CategoryID == "" && p.CategorySlug != "" {
				p.CategoryID = slugs[p.CategorySlug]
			}
			items = append(items, p.ProductInput)
		}
		res := cat.CreateProducts(ctx, items)
		report(out, "products", res.Summary(), failures(res.Failed))
	}
	if len(seed.Programs) > 0 {
		items := make([]models.ProgramInput, 0, len(seed.Programs))
		for _, p := range seed.Programs {
			if p.CategoryID == "" && p.CategorySlug != "" {
				p.CategoryID = slugs[p.CategorySlug]
			}
			items = append(items, p.ProgramInput)
		}
		res := cat.CreatePrograms(ctx, items)
		report(out, "programs", res.Summary(), failures(res.Failed))
	}
	return nil
}

func categoryIDsBySlug(ctx context.Context, cat *catalog.Catalog) (map[string]string, error) {
	ids := make(map[string]string)
	for page := 1; ; page++ {
		items, p, err := cat.ListCategories(ctx, models.CategoryFilter{PageRequest: models.PageRequest{Page: page, Limit: 100}})
		if err != nil {
			return nil, errors.Wrap(err, "list categories")
		}
		for _, c := range items {
			ids[c.Slug] = c.ObjectID.Hex()
		}
		if int64(page) >= p.TotalPages {
			return ids, nil
		}
	}
}

func failures[In any](failed []catalog.Failure[In]) []string {
	out := make([]string, 0, len(failed))
	for _, f := range failed {
		out = append(out, f.Error)
	}
	return out
}

func report(out io.Writer, entity string, s catalog.Summary, errs []string) {
	zap.S().Infow("seeded", "entity", entity, "total", s.Total, "successful", s.Successful, "failed", s.Failed)
	fmt.Fprintf(out, "%s: %d created, %d failed\n", entity, s.Successful, s.Failed)
	for _, e := range errs {
		fmt.Fprintf(out, "  - %s\n", e)
	}
}
