package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelink/catalog-api/internal/core/ports"
	"github.com/storelink/catalog-api/internal/pkg/token"
)

// ContextUserKey is the echo context key the resolved *domain.User is
// stored under.
const ContextUserKey = "user"

// Authenticate extracts the bearer token, verifies it, and re-resolves the
// subject against the user store. Identity is derived per request; no
// session state is kept between requests. Any failure is a uniform 401.
func Authenticate(tokens *token.Manager, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := token.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found. Token is invalid.")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
