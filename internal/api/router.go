package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storelink/catalog-api/docs"
	"github.com/storelink/catalog-api/internal/api/handler"
	"github.com/storelink/catalog-api/internal/api/middleware"
	"github.com/storelink/catalog-api/internal/core/domain"
	"github.com/storelink/catalog-api/internal/core/ports"
	"github.com/storelink/catalog-api/internal/pkg/token"
)

// RouterConfig carries everything NewRouter needs to assemble the HTTP
// surface.
type RouterConfig struct {
	Logger      zerolog.Logger
	Development bool
	Tokens      *token.Manager
	Users       ports.UserRepository
	Auth        *handler.AuthHandler
	Products    *handler.ProductHandler
	Health      *handler.HealthHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(rc RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(rc.Logger, rc.Development)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	authn := middleware.Authenticate(rc.Tokens, rc.Users)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", rc.Auth.Register)
	auth.POST("/login", rc.Auth.Login)
	auth.GET("/me", rc.Auth.Me, authn)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", rc.Products.List)
	products.GET("/:id", rc.Products.Get)
	products.POST("", rc.Products.Create, authn)
	products.PUT("/:id", rc.Products.Update, authn)
	products.DELETE("/:id", rc.Products.Delete, authn, middleware.RequireRoles(domain.RoleAdmin))

	// --- Operational endpoints ---
	e.GET("/health", rc.Health.Liveness)
	e.GET("/health/ready", rc.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
