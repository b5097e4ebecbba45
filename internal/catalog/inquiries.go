package catalog

import (
	"context"
	"strings"

	"storefront/internal/models"
)

// CreateInquiry guarda un mensaje del formulario de contacto
func (c *Catalog) CreateInquiry(ctx context.Context, in models.InquiryInput) (*models.Inquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	inq := &models.Inquiry{Name: in.Name, Phone: in.Phone, Message: in.Message}
	if err := c.inquiries.Insert(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

func (c *Catalog) ListInquiries(ctx context.Context, page models.PageRequest) ([]models.Inquiry, models.Pagination, error) {
	items, total, err := c.inquiries.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(total, page), nil
}
