package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestSqlite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db, DialectSqlite); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteCacheExpiryAndOverwrite(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	c := NewSqliteCache(openTestSqlite(t), clock.Now)

	if err := c.Set(ctx, "matrix:drive:k", []byte("first"), 10*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok, err := c.Get(ctx, "matrix:drive:k")
	if err != nil || !ok || string(v) != "first" {
		t.Fatalf("expected hit first, got %q ok=%v err=%v", v, ok, err)
	}

	clock.Advance(10 * time.Minute)
	if _, ok, err := c.Get(ctx, "matrix:drive:k"); err != nil || ok {
		t.Fatalf("expected miss after expiry, ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "matrix:drive:k", []byte("second"), 10*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, err = c.Get(ctx, "matrix:drive:k")
	if err != nil || !ok || string(v) != "second" {
		t.Fatalf("expected hit second, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSqliteCacheRejectsEmptyKey(t *testing.T) {
	c := NewSqliteCache(openTestSqlite(t), nil)

	if err := c.Set(context.Background(), "  ", []byte("x"), time.Minute); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestInitSchemaUnknownDialect(t *testing.T) {
	if err := InitSchema(openTestSqlite(t), "mysql"); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}
