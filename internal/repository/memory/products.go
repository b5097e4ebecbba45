package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type ProductStore struct {
	t table[models.Product]
}

func (s *ProductStore) conflict(p *models.Product) error {
	for _, row := range s.t.rows {
		if row.ID == p.ID {
			continue
		}
		if row.ModelNumber == p.ModelNumber {
			return &repository.DuplicateKeyError{Key: "modelNumber"}
		}
		if row.Slug == p.Slug {
			return &repository.DuplicateKeyError{Key: "slug"}
		}
	}
	return nil
}

func (s *ProductStore) Insert(_ context.Context, p *models.Product) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if err := s.conflict(p); err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = now(), now()
	row := *p
	s.t.rows = append(s.t.rows, &row)
	return nil
}

func (s *ProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	_, row := s.t.find(func(p *models.Product) bool { return p.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	out := *row
	return &out, nil
}

func matchProduct(f models.ProductFilter, p *models.Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Visibility != nil && p.Visibility != *f.Visibility {
		return false
	}
	if f.Search != "" {
		return contains(p.ModelNumber, f.Search) || anyContains(f.Search, p.ProductSpecs...)
	}
	return true
}

func (s *ProductStore) List(_ context.Context, f models.ProductFilter) ([]models.Product, int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	items := s.t.newestFirst(func(p *models.Product) bool { return matchProduct(f, p) })
	page, total := paginate(items, f.PageRequest)
	return page, total, nil
}

func (s *ProductStore) Update(_ context.Context, id primitive.ObjectID, u models.ProductUpdate) (*models.Product, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	_, row := s.t.find(func(p *models.Product) bool { return p.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	next := *row
	if err := u.ApplyTo(&next); err != nil {
		return nil, err
	}
	if err := s.conflict(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = now()
	*row = next
	return &next, nil
}

func (s *ProductStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	i, row := s.t.find(func(p *models.Product) bool { return p.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	s.t.remove(i)
	return row, nil
}

func (s *ProductStore) Count(_ context.Context, from time.Time) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(p *models.Product) bool { return since(p.CreatedAt, from) }), nil
}

func (s *ProductStore) CountLowStock(_ context.Context, threshold int) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(p *models.Product) bool { return p.Quantity < threshold }), nil
}

func (s *ProductStore) CountByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(p *models.Product) bool { return p.CategoryID == categoryID }), nil
}

func (s *ProductStore) DeleteByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	return s.t.removeWhere(func(p *models.Product) bool { return p.CategoryID == categoryID }), nil
}
