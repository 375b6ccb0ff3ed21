package ports

import (
	"context"

	"github.com/storelink/catalog-api/internal/core/domain"
)

// RegisterInput carries validated, normalized registration data.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; empty defaults to domain.RoleUser
}

// AuthService implements the credential lifecycle: registration, login,
// and identity re-resolution.
type AuthService interface {
	// Register creates an account and returns a fresh token alongside the
	// created user (password hash never populated on the return value).
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)

	// Login verifies credentials and mints a token. Unknown email and wrong
	// password both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// CurrentUser resolves a user by id, hash excluded.
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
}
