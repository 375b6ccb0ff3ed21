// Package token issues and verifies the signed identity tokens carried in
// the Authorization header. Tokens are self-contained HS256 JWTs whose only
// claim set is {subject, issuedAt, expiresAt}; there is no revocation list,
// so rotating the signing secret invalidates every outstanding token.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL applies when no token lifetime is configured.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is the single failure mode of Verify. Malformed tokens,
// wrong signatures, and expired tokens all collapse into it so callers
// cannot probe which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Manager signs and verifies tokens with a process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a token for the given user id, expiring after the configured TTL.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry in one pass and returns the subject
// user id.
func (m *Manager) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// FromHeader extracts the bearer token from an Authorization header value.
// A missing or malformed header is not an error; the caller decides whether
// authentication is required.
func FromHeader(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
