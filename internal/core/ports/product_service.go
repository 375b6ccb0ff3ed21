package ports

import (
	"context"

	"github.com/storelink/catalog-api/internal/core/domain"
)

// CreateProductInput carries validated product creation data.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	InStock     *bool // nil defaults to true
}

// ProductService defines the catalog use cases. Actor is the display name
// of the authenticated caller, used only for notification events.
type ProductService interface {
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput, actor string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch, actor string) (*domain.Product, error)
	Delete(ctx context.Context, id string, actor string) (*domain.Product, error)
}
