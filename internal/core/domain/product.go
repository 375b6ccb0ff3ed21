package domain

import (
	"errors"
	"time"
)

// Categories is the closed set of product categories.
var Categories = []string{"Electronics", "Clothing", "Books", "Home", "Sports", "Other"}

// ValidCategory reports whether c is a member of Categories (exact match).
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidProductID = errors.New("invalid product id")
var ErrProductExists = errors.New("product already exists")

// Product is the catalog aggregate.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductPatch carries a partial update. Nil fields are left untouched by
// the merge; updated_at is always refreshed regardless.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	InStock     *bool
}
