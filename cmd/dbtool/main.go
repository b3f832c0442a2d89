package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/config"
	"itinerary-route-service/internal/platform/db"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// dbtool creates the route cache table ahead of deployment.
//
//	dbtool -dialect postgres   (uses DATABASE_URL)
//	dbtool -dialect sqlite     (uses DB_PATH)
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	dialect := flag.String("dialect", config.Get("DB_DIALECT", cache.DialectPostgres), "database dialect: postgres or sqlite")
	flag.Parse()

	conn, err := open(strings.ToLower(*dialect))
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Info("Initializing route cache schema...")
	if err := cache.InitSchema(conn, strings.ToLower(*dialect)); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")
}

func open(dialect string) (*sql.DB, error) {
	switch dialect {
	case cache.DialectPostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, errors.New("DATABASE_URL is required")
		}
		return db.Open(databaseURL)
	case cache.DialectSqlite:
		return db.OpenSqlite(config.Get("DB_PATH", "data/cache.db"))
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}
