package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storelink/catalog-api/internal/api/middleware"
	"github.com/storelink/catalog-api/internal/core/domain"
)

// ctxUser returns the identity resolved by the Authenticate middleware, or
// nil when the route ran without it.
func ctxUser(c echo.Context) *domain.User {
	u, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	return u
}

// actorName is the display name attached to notification events. It is
// empty on unauthenticated routes; the service substitutes "System".
func actorName(c echo.Context) string {
	if u := ctxUser(c); u != nil {
		return u.Name
	}
	return ""
}
