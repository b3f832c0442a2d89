package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed cache for provider responses, used for local runs.
// Keys are expected to be normalized by the caller.
type SqliteCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteCache(db *sql.DB, now func() time.Time) *SqliteCache {
	if now == nil {
		now = time.Now
	}
	return &SqliteCache{DB: db, now: now}
}

// Fetch an unexpired cached value.
func (s *SqliteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT
        value
    FROM route_cache
    WHERE cache_key = ?
        AND expires_at > ?;
	`

	var value []byte
	err := s.DB.QueryRowContext(ctx, q, key, s.now().UnixNano()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return value, true, nil
}

// Store a value, replacing any previous row for the key.
func (s *SqliteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
        cache_key,
        value,
        expires_at
    )
    VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value, s.now().Add(ttl).UnixNano()); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
