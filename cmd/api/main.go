package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizlens/backend/internal/adapters/cache"
	"github.com/bizlens/backend/internal/adapters/database"
	"github.com/bizlens/backend/internal/adapters/providers/places"
	"github.com/bizlens/backend/internal/api/handlers"
	"github.com/bizlens/backend/internal/api/routes"
	"github.com/bizlens/backend/internal/application/services"
	"github.com/bizlens/backend/internal/domain/providers"
	"github.com/bizlens/backend/internal/infrastructure/clients/postgres"
	"github.com/bizlens/backend/internal/infrastructure/clients/redis"
	"github.com/bizlens/backend/internal/infrastructure/observability"
	"github.com/bizlens/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("business-discovery", &cfg.Server)
	observability.SetupPropagation()
	logger := observability.GetLogger()

	// Initialize PostgreSQL (required: search has no meaning without the catalog)
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// Initialize Redis (optional: search degrades gracefully without it)
	var cacheProvider providers.CacheProvider
	var redisClient *redis.Client
	redisClient, err = redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, recent searches and result caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// External places provider
	var placesProvider providers.PlacesProvider
	switch cfg.Places.Provider {
	case "google":
		placesProvider = places.NewGoogleProviderWithOptions(
			cfg.Places.APIKey,
			cfg.Places.BaseURL,
			&http.Client{Timeout: cfg.Places.Timeout},
		)
	default:
		logger.Info().Msg("using mock places provider")
		placesProvider = places.NewMockProvider()
	}

	// Repositories and services
	catalogReader := database.NewCatalogAdapter(pgClient)
	historyRepo := database.NewSearchHistoryAdapter(pgClient)

	searchService := services.NewSearchService(
		catalogReader,
		placesProvider,
		cacheProvider,
		historyRepo,
		services.SearchServiceOptions{
			ExternalTimeout: cfg.Search.ExternalTimeout,
			ResultCacheTTL:  cfg.Search.ResultCacheTTL,
			RecentSearchCap: cfg.Search.RecentSearchCap,
		},
	)
	recentService := services.NewRecentSearchService(cacheProvider, historyRepo)

	// Handlers and routes
	searchHandler := handlers.NewSearchHandler(searchService, recentService)

	var redisPinger handlers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}
	healthHandler := handlers.NewHealthHandler(pgClient, redisPinger)

	router := routes.NewRouter(searchHandler, healthHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped")
}
