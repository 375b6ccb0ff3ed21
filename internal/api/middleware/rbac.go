package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelink/catalog-api/internal/core/domain"
)

// RequireRoles enforces role policy on a route. It assumes Authenticate
// already ran: a missing identity is a 401, a role outside the allowed set
// is a 403.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextUserKey).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. User not authenticated.")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("Access denied. %s role is not authorized to access this resource.", user.Role))
			}
			return next(c)
		}
	}
}
