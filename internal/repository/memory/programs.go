package memory

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type ProgramStore struct {
	t table[models.Program]
}

func (s *ProgramStore) conflict(p *models.Program) error {
	for _, row := range s.t.rows {
		if row.ID == p.ID {
			continue
		}
		if row.Name == p.Name {
			return &repository.DuplicateKeyError{Key: "name"}
		}
		if row.Slug == p.Slug {
			return &repository.DuplicateKeyError{Key: "slug"}
		}
	}
	return nil
}

func (s *ProgramStore) Insert(_ context.Context, p *models.Program) error {
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

func (s *ProgramStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Program, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	_, row := s.t.find(func(p *models.Program) bool { return p.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	out := *row
	return &out, nil
}

func sameCategory(ref *primitive.ObjectID, id primitive.ObjectID) bool {
	return ref != nil && *ref == id
}

func matchProgram(f models.ProgramFilter, p *models.Program) bool {
	if f.CategoryID != nil && !sameCategory(p.CategoryID, *f.CategoryID) {
		return false
	}
	if f.IsFree != nil && p.IsFree != *f.IsFree {
		return false
	}
	if f.Platform != "" && !slices.Contains(p.Platforms, f.Platform) {
		return false
	}
	if f.Visibility != nil && p.Visibility != *f.Visibility {
		return false
	}
	if f.Search != "" {
		return anyContains(f.Search, p.Name, p.NameEn, p.ShortDescription)
	}
	return true
}

func (s *ProgramStore) List(_ context.Context, f models.ProgramFilter) ([]models.Program, int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	items := s.t.newestFirst(func(p *models.Program) bool { return matchProgram(f, p) })
	page, total := paginate(items, f.PageRequest)
	return page, total, nil
}

func (s *ProgramStore) Update(_ context.Context, id primitive.ObjectID, u models.ProgramUpdate) (*models.Program, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	_, row := s.t.find(func(p *models.Program) bool { return p.ID == id })
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

func (s *ProgramStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Program, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	i, row := s.t.find(func(p *models.Program) bool { return p.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	s.t.remove(i)
	return row, nil
}

func (s *ProgramStore) Count(_ context.Context, from time.Time) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(p *models.Program) bool { return since(p.CreatedAt, from) }), nil
}

func (s *ProgramStore) CountByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(p *models.Program) bool { return sameCategory(p.CategoryID, categoryID) }), nil
}

func (s *ProgramStore) DeleteByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	return s.t.removeWhere(func(p *models.Program) bool { return sameCategory(p.CategoryID, categoryID) }), nil
}
