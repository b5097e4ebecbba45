package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type CategoryStore struct {
	t table[models.Category]
}

func (s *CategoryStore) conflict(c *models.Category) error {
	for _, row := range s.t.rows {
		if row.ObjectID == c.ObjectID {
			continue
		}
		if row.ID == c.ID {
			return &repository.DuplicateKeyError{Key: "id"}
		}
		if row.Slug == c.Slug {
			return &repository.DuplicateKeyError{Key: "slug"}
		}
	}
	return nil
}

func (s *CategoryStore) Insert(_ context.Context, c *models.Category) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if c.ObjectID.IsZero() {
		c.ObjectID = primitive.NewObjectID()
	}
	if err := s.conflict(c); err != nil {
		return err
	}
	c.CreatedAt, c.UpdatedAt = now(), now()
	row := *c
	s.t.rows = append(s.t.rows, &row)
	return nil
}

func (s *CategoryStore) FindByObjectID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	_, row := s.t.find(func(c *models.Category) bool { return c.ObjectID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (s *CategoryStore) List(_ context.Context, f models.CategoryFilter) ([]models.Category, int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	items := s.t.sorted(func(c *models.Category) bool {
		return f.Search == "" || anyContains(f.Search, c.Name, c.Slug)
	}, func(a, b *models.Category) bool { return a.ID < b.ID })
	page, total := paginate(items, f.PageRequest)
	return page, total, nil
}

func (s *CategoryStore) Update(_ context.Context, id primitive.ObjectID, u models.CategoryUpdate) (*models.Category, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	_, row := s.t.find(func(c *models.Category) bool { return c.ObjectID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	next := *row
	u.ApplyTo(&next)
	if err := s.conflict(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = now()
	*row = next
	return &next, nil
}

func (s *CategoryStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	i, row := s.t.find(func(c *models.Category) bool { return c.ObjectID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	s.t.remove(i)
	return row, nil
}

func (s *CategoryStore) Count(_ context.Context, from time.Time) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(c *models.Category) bool { return since(c.CreatedAt, from) }), nil
}
