package handler

import (
	"strings"

	"github.com/storelink/catalog-api/internal/core/domain"
)

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=100"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	Category    string   `json:"category"    validate:"required,category"`
	InStock     *bool    `json:"inStock"`
}

func (r *createProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
}

// updateProductRequest is a partial body: nil fields are left untouched by
// the merge, supplied fields are re-validated with the create rules.
type updateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=2,max=100"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Category    *string  `json:"category"    validate:"omitempty,category"`
	InStock     *bool    `json:"inStock"`
}

func (r *updateProductRequest) normalize() {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
	if r.Category != nil {
		trimmed := strings.TrimSpace(*r.Category)
		r.Category = &trimmed
	}
}

func (r *updateProductRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		InStock:     r.InStock,
	}
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *domain.Product `json:"data,omitempty"`
}

type listProductsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []*domain.Product `json:"data"`
}
