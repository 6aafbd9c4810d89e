// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package main is the entry point for the ForkFinder server.
//
// ForkFinder helps groups decide where to eat. It searches Google Places
// and Yelp Fusion concurrently, merges duplicate listings across the two
// providers, and ranks the result by rating. Search results are attached
// to shareable group sessions so everyone votes on the same list.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, FORKFINDER_* env (Koanf v2)
//  2. MongoDB: session document store
//  3. Redis: restaurant-result cache keyed by session
//  4. Providers: Google Places and Yelp Fusion clients, circuit-breaker wrapped
//  5. HTTP Server: REST API on chi with Prometheus metrics at /metrics
//
// # Configuration
//
// Required environment variables:
//   - FORKFINDER_GOOGLE_API_KEY: Google Places API key
//   - FORKFINDER_YELP_API_KEY: Yelp Fusion API key
//
// Optional:
//   - FORKFINDER_SERVER_PORT: HTTP port (default 8080)
//   - FORKFINDER_MONGO_URI: MongoDB connection string (default mongodb://127.0.0.1:27017)
//   - FORKFINDER_REDIS_ADDR: Redis address (default 127.0.0.1:6379)
//   - FORKFINDER_CONFIG: path to a YAML config file
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests for up to 10 seconds,
// then closes the Redis and MongoDB connections.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrDuise/ForkFinder/internal/api"
	"github.com/MrDuise/ForkFinder/internal/cache"
	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/geocode"
	"github.com/MrDuise/ForkFinder/internal/logging"
	"github.com/MrDuise/ForkFinder/internal/providers"
	"github.com/MrDuise/ForkFinder/internal/retry"
	"github.com/MrDuise/ForkFinder/internal/search"
	"github.com/MrDuise/ForkFinder/internal/session"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	logging.Info().
		Str("mongo_database", cfg.Mongo.Database).
		Str("redis_addr", cfg.Redis.Addr).
		Int("default_radius_m", cfg.Search.DefaultRadius).
		Msg("Starting ForkFinder")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session document store
	connectCtx, connectCancel := context.WithTimeout(ctx, 15*time.Second)
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	connectCancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Error disconnecting MongoDB")
		}
	}()
	store := session.NewMongoStore(mongoClient.Database(cfg.Mongo.Database))
	logging.Info().Msg("MongoDB connected")

	// Restaurant-result cache
	redisStore, err := cache.NewRedisStore(ctx, &cfg.Redis)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer func() {
		if err := redisStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing Redis")
		}
	}()
	logging.Info().Msg("Redis connected")

	// Providers, circuit-breaker wrapped so a failing upstream is shed
	// instead of holding every search to its timeout.
	googleClient := providers.NewGoogleClient(&cfg.Google)
	yelpClient := providers.NewYelpClient(&cfg.Yelp)
	aggregator := search.NewAggregator(&cfg.Search,
		search.NewBreakerSource(&search.GoogleSource{Client: googleClient}),
		search.NewBreakerSource(&search.YelpSource{Client: yelpClient, Limit: cfg.Search.DefaultLimit}),
	)

	sessions := session.NewService(store, redisStore, aggregator, retry.NewPolicy(), cfg.Server.PublicURL)

	geocoder := geocode.NewGoogleGeocoder(&cfg.Google)
	server := api.NewServer(&cfg.Server, api.NewHandler(sessions, aggregator, geocoder))

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr()).Msg("HTTP server listening")
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logging.Error().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logging.Info().Msg("ForkFinder stopped")
}
