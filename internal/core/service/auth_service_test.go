package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rs/zerolog"

	"github.com/storelink/catalog-api/internal/core/domain"
	"github.com/storelink/catalog-api/internal/core/ports"
	"github.com/storelink/catalog-api/internal/pkg/token"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = "user_" + strconv.Itoa(r.nextID)
	r.byEmail[stored.Email] = stored

	created := cloneUser(stored)
	created.PasswordHash = ""
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			found := cloneUser(u)
			found.PasswordHash = ""
			return found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, token.NewManager("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	signed, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "Alice@Example.com", Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user must not carry the hash")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	stored := repo.byEmail["alice@example.com"]
	if stored == nil {
		t.Fatalf("user not persisted under normalized email")
	}
	if stored.PasswordHash == "Secret123" || strings.Contains(stored.PasswordHash, "Secret123") {
		t.Fatalf("stored hash must not contain the raw password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_SaltsHashes(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "A", Email: "a@example.com", Password: "Same123x"})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err = svc.Register(context.Background(), ports.RegisterInput{Name: "B", Email: "b@example.com", Password: "Same123x"})
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	if repo.byEmail["a@example.com"].PasswordHash == repo.byEmail["b@example.com"].PasswordHash {
		t.Fatalf("two hashes of the same password must differ (salting)")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "Secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Case variants of an existing email must collide.
	_, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "BOB@example.com", Password: "Secret456"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "Secret123", Role: "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Register_HonorsDeclaredRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "Secret123", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
}

func TestAuthService_Login_TokenResolvesToUser(t *testing.T) {
	repo := newStubUserRepo()
	tokens := token.NewManager("secret", time.Hour)
	svc := NewAuthService(repo, tokens, zerolog.Nop())

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dana", Email: "dana@example.com", Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "Dana@Example.com", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("login result must not carry the hash")
	}

	subject, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if subject != registered.ID {
		t.Fatalf("expected token subject %q, got %q", registered.ID, subject)
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Frank", Email: "frank@example.com", Password: "Right123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "frank@example.com", "Wrong123")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "Right123")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages must match: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Email != "grace@example.com" || user.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
