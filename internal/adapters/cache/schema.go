package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Supported SQL dialects for the cache table.
const (
	DialectPostgres = "postgres"
	DialectSqlite   = "sqlite"
)

// Initialize the route_cache table for the given dialect.
func InitSchema(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var valueType string
	switch dialect {
	case DialectPostgres:
		valueType = "BYTEA"
	case DialectSqlite:
		valueType = "BLOB"
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS route_cache (
        cache_key TEXT PRIMARY KEY,
        value %s NOT NULL,
        expires_at BIGINT NOT NULL
    );
	`, valueType)

	statements := []string{
		createCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
