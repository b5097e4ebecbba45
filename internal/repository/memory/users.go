package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type UserStore struct {
	t table[models.User]
}

func (s *UserStore) Insert(_ context.Context, u *models.User) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, row := s.t.find(func(r *models.User) bool { return r.Email == u.Email }); row != nil {
		return &repository.DuplicateKeyError{Key: "email"}
	}
	u.CreatedAt, u.UpdatedAt = now(), now()
	row := *u
	s.t.rows = append(s.t.rows, &row)
	return nil
}

func (s *UserStore) lookup(match func(*models.User) bool, withPassword bool) (*models.User, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	_, row := s.t.find(match)
	if row == nil {
		return nil, repository.ErrNotFound
	}
	out := *row
	if !withPassword {
		out.Password = ""
	}
	return &out, nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.lookup(func(u *models.User) bool { return u.ID == id }, false)
}

func (s *UserStore) FindByEmail(_ context.Context, email string, withPassword bool) (*models.User, error) {
	return s.lookup(func(u *models.User) bool { return u.Email == email }, withPassword)
}

func (s *UserStore) SetCredentials(_ context.Context, id primitive.ObjectID, passwordHash string, role models.Role) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	_, row := s.t.find(func(u *models.User) bool { return u.ID == id })
	if row == nil {
		return repository.ErrNotFound
	}
	row.Password = passwordHash
	row.Role = role
	row.UpdatedAt = now()
	return nil
}

// Len devuelve cuántos usuarios hay guardados
func (s *UserStore) Len() int {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	return len(s.t.rows)
}
