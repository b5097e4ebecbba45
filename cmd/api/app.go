package main

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
)

// app reúne los servicios construidos a partir de la configuración
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	auth    *auth.Service
	cache   *cache.Cache
	closers []func(context.Context) error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	var (
		stores catalog.Stores
		users  auth.UserStore
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		zap.S().Warn("using in-memory store; data is lost on exit")
		st := memory.New()
		stores = catalog.Stores{
			Categories: st.Categories,
			Products:   st.Products,
			Programs:   st.Programs,
			Services:   st.Services,
			Inquiries:  st.Inquiries,
		}
		users = st.Users
	default:
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		db := client.Database(cfg.MongoDB)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			a.close(ctx)
			return nil, errors.Wrap(err, "ensure indexes")
		}
		stores = catalog.Stores{
			Categories: repository.NewCategoryRepository(db),
			Products:   repository.NewProductRepository(db),
			Programs:   repository.NewProgramRepository(db),
			Services:   repository.NewServiceRepository(db),
			Inquiries:  repository.NewInquiryRepository(db),
		}
		users = repository.NewUserRepository(db)
	}

	opts := []catalog.Option{catalog.WithDeletePolicy(cfg.CategoryDeletePolicy)}
	if cfg.CacheTTL > 0 {
		a.cache = cache.New(cfg.CacheTTL, cfg.CacheTTL)
		a.closers = append(a.closers, func(context.Context) error {
			a.cache.Close()
			return nil
		})
		opts = append(opts, catalog.WithCache(a.cache))
	}
	a.catalog = catalog.New(stores, opts...)
	a.auth = auth.NewService(users, cfg.JWTSecret, cfg.JWTExpiresIn)
	return a, nil
}

// seedAdmin crea o promueve la cuenta de ADMIN_EMAIL si está configurada
func (a *app) seedAdmin(ctx context.Context) error {
	if a.cfg.AdminEmail == "" {
		return nil
	}
	_, _, err := a.auth.EnsureAdmin(ctx, auth.AdminSeed{
		Email:    a.cfg.AdminEmail,
		Password: a.cfg.AdminPassword,
		Name:     a.cfg.AdminName,
		Phone:    a.cfg.AdminPhone,
	})
	return err
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			zap.S().Warnw("close failed", "error", err)
		}
	}
}
