package ports

import (
	"context"
	"time"
)

// Port: a key/value store with per-entry expiry shared across requests.
// Expired entries read as absent; Set overwrites any previous entry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
