package ports

import (
	"context"

	"github.com/storelink/catalog-api/internal/core/domain"
)

// UserRepository defines persistence for account records. Email uniqueness
// is enforced at this level (unique index in the Mongo implementation).
type UserRepository interface {
	// Create persists a new user and returns the stored record.
	// Returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail looks up a user by normalized email. The returned record
	// includes the password hash; it exists for credential verification only.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID re-resolves an identity from a token subject. The password
	// hash is stripped from the result.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
