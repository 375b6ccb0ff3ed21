package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storelink/catalog-api/internal/api/metrics"
	"github.com/storelink/catalog-api/internal/core/domain"
	"github.com/storelink/catalog-api/internal/core/ports"
	"github.com/storelink/catalog-api/internal/pkg/token"
)

// bcryptCost matches the adaptive-hash work factor of the account store.
const bcryptCost = 12

// AuthService implements registration, login, and identity resolution.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Manager
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register creates an account. The supplied role is honored when it is a
// member of the declared enum; empty defaults to "user". Email is
// normalized before the uniqueness check so case variants collide.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return "", nil, err
	}

	signed, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	created.PasswordHash = ""
	return signed, created, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password collapse into the same domain.ErrInvalidCredentials so callers
// cannot learn which half was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	user.PasswordHash = ""
	return signed, user, nil
}

// CurrentUser resolves a user by id, hash excluded.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
