package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

type InquiryStore struct {
	t table[models.Inquiry]
}

func (s *InquiryStore) Insert(_ context.Context, i *models.Inquiry) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	i.CreatedAt, i.UpdatedAt = now(), now()
	row := *i
	s.t.rows = append(s.t.rows, &row)
	return nil
}

func (s *InquiryStore) List(_ context.Context, page models.PageRequest) ([]models.Inquiry, int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	items, total := paginate(s.t.newestFirst(func(*models.Inquiry) bool { return true }), page)
	return items, total, nil
}

func (s *InquiryStore) Count(_ context.Context, from time.Time) (int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	return s.t.count(func(i *models.Inquiry) bool { return since(i.CreatedAt, from) }), nil
}
