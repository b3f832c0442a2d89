package main

import (
	"context"
	"database/sql"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/adapters/routing"
	"itinerary-route-service/internal/api"
	"itinerary-route-service/internal/config"
	"itinerary-route-service/internal/platform/db"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires the cache backend and the Geoapify provider behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_FILE", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	if err := obs.ConfigureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal(err)
	}

	routeCache, closeCache, err := openCache(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	provider, err := routing.NewGeoapifyProvider(cfg.GeoapifyAPIKey, routeCache, routing.GeoapifyOptions{
		BaseURL:           cfg.GeoapifyBaseURL,
		Timeout:           cfg.GeoapifyTimeout,
		RequestsPerSecond: cfg.GeoapifyRPS,
		AutocompleteTTL:   cfg.AutocompleteTTL,
		MatrixTTL:         cfg.MatrixTTL,
	})
	if err != nil {
		log.Fatal(err)
	}
	if !provider.Configured() {
		log.Warn("GEOAPIFY_API_KEY is not set; routes will be straight-line estimates")
	}

	router := api.NewRouter(provider, cfg.MaxOptimizeActivities)

	// Timeouts are tuned for cold-cache optimization (geocode, matrix and route calls in sequence).
	log.WithFields(log.Fields{"addr": ":" + cfg.Port, "cache": cfg.CacheBackend}).Info("Server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error(err)
	}
}

// openCache builds the configured cache backend and returns its cleanup func.
func openCache(cfg config.Config) (ports.Cache, func(), error) {
	switch cfg.CacheBackend {
	case "redis":
		rdb, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("open cache: ping redis: %w", err)
		}
		return cache.NewRedisCache(rdb, "route:"), func() { rdb.Close() }, nil

	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		if err := cache.InitSchema(conn, cache.DialectPostgres); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		return cache.NewSQLCache(conn, time.Now), closeDB(conn), nil

	case "sqlite":
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		if err := cache.InitSchema(conn, cache.DialectSqlite); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		return cache.NewSqliteCache(conn, time.Now), closeDB(conn), nil

	default:
		return cache.NewMemoryCache(time.Now), func() {}, nil
	}
}

func closeDB(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Warn("close cache database")
		}
	}
}
