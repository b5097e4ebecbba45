package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RecentWindow delimita los elementos "recientes" del panel
const RecentWindow = 30 * 24 * time.Hour

type EntityStats struct {
	Total  int64 `json:"total"`
	Recent int64 `json:"recent"`
}

type ProductStats struct {
	EntityStats
	LowStock int64 `json:"lowStock"`
}

// Stats son los contadores del panel; siempre se leen del almacén
type Stats struct {
	Categories EntityStats  `json:"categories"`
	Products   ProductStats `json:"products"`
	Programs   EntityStats  `json:"programs"`
	Services   EntityStats  `json:"services"`
	Inquiries  EntityStats  `json:"inquiries"`
}

type counter func(ctx context.Context, since time.Time) (int64, error)

func (c *Catalog) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	recentFrom := c.now().Add(-RecentWindow)

	g, gctx := errgroup.WithContext(ctx)
	count := func(name string, fn counter, total, recent *int64) {
		g.Go(func() error {
			n, err := fn(gctx, time.Time{})
			if err != nil {
				return errors.Wrapf(err, "count %s", name)
			}
			*total = n
			return nil
		})
		g.Go(func() error {
			n, err := fn(gctx, recentFrom)
			if err != nil {
				return errors.Wrapf(err, "count recent %s", name)
			}
			*recent = n
			return nil
		})
	}
	count("categories", c.categories.Count, &st.Categories.Total, &st.Categories.Recent)
	count("products", c.products.Count, &st.Products.Total, &st.Products.Recent)
	count("programs", c.programs.Count, &st.Programs.Total, &st.Programs.Recent)
	count("services", c.services.Count, &st.Services.Total, &st.Services.Recent)
	count("inquiries", c.inquiries.Count, &st.Inquiries.Total, &st.Inquiries.Recent)
	g.Go(func() error {
		n, err := c.products.CountLowStock(gctx, LowStockThreshold)
		if err != nil {
			return errors.Wrap(err, "count low stock")
		}
		st.Products.LowStock = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
