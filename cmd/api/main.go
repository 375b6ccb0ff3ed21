package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/storelink/catalog-api/internal/api"
	"github.com/storelink/catalog-api/internal/api/handler"
	"github.com/storelink/catalog-api/internal/core/ports"
	"github.com/storelink/catalog-api/internal/core/service"
	"github.com/storelink/catalog-api/internal/infrastructure/db/mongo"
	"github.com/storelink/catalog-api/internal/infrastructure/db/redis"
	"github.com/storelink/catalog-api/internal/infrastructure/notify"
	"github.com/storelink/catalog-api/internal/pkg/config"
	"github.com/storelink/catalog-api/internal/pkg/token"
	"github.com/storelink/catalog-api/pkg/logger"
)

func main() {
	// .env is optional; system environment takes over when absent.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Development()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongo.NewUserRepository(db)
	productRepo := mongo.NewProductRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create product indexes")
	}

	// --- Real-time sink (optional: the API runs without fan-out) ---
	var notifier ports.Notifier
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, real-time notifications disabled")
	} else {
		defer rdb.Close()
		dispatcher := notify.NewDispatcher(0, redis.NewPublisher(rdb, cfg.Redis.Channel), log)
		dispatcher.Start(ctx)
		notifier = dispatcher
	}

	// --- Services and handlers ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	productService := service.NewProductService(productRepo, notifier, log)

	e := api.NewRouter(api.RouterConfig{
		Logger:      log,
		Development: cfg.Development(),
		Tokens:      tokens,
		Users:       userRepo,
		Auth:        handler.NewAuthHandler(authService),
		Products:    handler.NewProductHandler(productService),
		Health:      handler.NewHealthHandler(db, rdb),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
