package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type ServiceStore struct {
	t table[models.Service]
}

func (s *ServiceStore) conflict(svc *models.Service) error {
	for _, row := range s.t.rows {
		if row.ObjectID == svc.ObjectID {
			continue
		}
		if row.ID == svc.ID {
			return &repository.DuplicateKeyError{Key: "id"}
		}
		if row.Slug == svc.Slug {
			return &repository.DuplicateKeyError{Key: "slug"}
		}
	}
	return nil
}

func (s *ServiceStore) Insert(_ context.Context, svc *models.Service) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if svc.ObjectID.IsZero() {
		svc.ObjectID = primitive.NewObjectID()
	}
	if err := s.conflict(svc); err != nil {
		return err
	}
	svc.CreatedAt, svc.UpdatedAt = now(), now()
	row := *svc
	s.t.rows = append(s.t.rows, &row)
	return nil
}

func (s *ServiceStore) FindByID(_ context.Context, id int64) (*models.Service, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	_, row := s.t.find(func(svc *models.Service) bool { return svc.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (s *ServiceStore) List(_ context.Context, f models.ServiceFilter) ([]models.Service, int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	items := s.t.sorted(func(svc *models.Service) bool {
		return f.Search == "" || anyContains(f.Search, svc.Name, svc.Slug)
	}, func(a, b *models.Service) bool { return a.ID < b.ID })
	page, total := paginate(items, f.PageRequest)
	return page, total, nil
}

func (s *ServiceStore) Update(_ context.Context, id int64, u models.ServiceUpdate) (*models.Service, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	_, row := s.t.find(func(svc *models.Service) bool { return svc.ID == id })
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

func (s *ServiceStore) Delete(_ context.Context, id int64) (*models.Service, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	i, row := s.t.find(func(svc *models.Service) bool { return svc.ID == id })
	if row == nil {
		return nil, repository.ErrNotFound
	}
	s.t.remove(i)
	return row, nil
}

func (s *ServiceStore) Count(_ context.Context, from time.Time) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(svc *models.Service) bool { return since(svc.CreatedAt, from) }), nil
}
