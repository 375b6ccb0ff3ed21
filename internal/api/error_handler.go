package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storelink/catalog-api/internal/api/handler"
	"github.com/storelink/catalog-api/internal/core/domain"
)

// errorEnvelope is the uniform failure body: every error, from a field
// violation to an unknown route, renders the same shape so clients parse
// errors one way.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns the single error-to-response mapper applied
// after the pipeline. Unexpected errors are logged with their real cause;
// the client sees the raw message only in development mode.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, development)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, development bool) (int, errorEnvelope) {
	// Field-level violations collected by the validation pipeline.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{
			Message: "Validation failed",
			Errors:  ve.Fields,
		}
	}

	// Echo's own errors: bind failures, middleware 401/403, router 404.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusNotFound && msg == http.StatusText(http.StatusNotFound) {
			msg = "Route not found"
		}
		return he.Code, errorEnvelope{Message: msg}
	}

	// Known domain errors map deterministically.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorEnvelope{Message: "User with this email already exists"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorEnvelope{Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "User not found"}
	case errors.Is(err, domain.ErrInvalidProductID):
		return http.StatusBadRequest, errorEnvelope{Message: "Invalid product id"}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "Product not found"}
	case errors.Is(err, domain.ErrProductExists):
		return http.StatusBadRequest, errorEnvelope{Message: "Product already exists"}
	}

	// Unexpected error: log the real cause, withhold it outside development.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	msg := "Something went wrong!"
	if development {
		msg = err.Error()
	}
	return http.StatusInternalServerError, errorEnvelope{Message: msg}
}
