package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLCache is a Postgres-backed cache (pgx driver) for provider responses.
// Rows carry an expiry timestamp compared against the cache clock on read.
type SQLCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLCache(db *sql.DB, now func() time.Time) *SQLCache {
	if now == nil {
		now = time.Now
	}
	return &SQLCache{DB: db, now: now}
}

// Fetch an unexpired cached value.
func (s *SQLCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT value
    FROM route_cache
    WHERE cache_key = $1
        AND expires_at > $2;
	`

	var value []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now().UnixNano()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return value, true, nil
}

// Store a value, overwriting any previous (possibly expired) row.
func (s *SQLCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	q := `
	INSERT INTO route_cache (cache_key, value, expires_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value, s.now().Add(ttl).UnixNano()); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
