package ports

import (
	"context"

	"github.com/storelink/catalog-api/internal/core/domain"
)

// ListProductsFilter carries the query parameters for listing products.
// Zero/nil fields impose no constraint; set fields compose with AND.
type ListProductsFilter struct {
	Category string   // case-insensitive substring match
	Name     string   // case-insensitive substring match
	InStock  *bool    // exact match
	MinPrice *float64 // price >= MinPrice
	MaxPrice *float64 // price <= MaxPrice
}

// ProductRepository defines persistence operations for products. All
// id-taking methods return domain.ErrInvalidProductID when the id does not
// have the store's identifier shape, distinct from domain.ErrProductNotFound.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns matching products ordered newest-created first.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	// Update merges only the supplied patch fields and refreshes updated_at,
	// returning the post-update record.
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	// Delete removes the product and returns the prior record.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}
