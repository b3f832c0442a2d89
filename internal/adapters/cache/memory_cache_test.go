package cache

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(clock.Now)

	if _, ok, _ := c.Get(ctx, "matrix:drive:[]"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	if err := c.Set(ctx, "matrix:drive:[]", []byte("v1"), 10*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(9 * time.Minute)
	v, ok, err := c.Get(ctx, "matrix:drive:[]")
	if err != nil || !ok {
		t.Fatalf("expected hit before expiry, ok=%v err=%v", ok, err)
	}
	if string(v) != "v1" {
		t.Fatalf("value = %q, want v1", v)
	}

	clock.Advance(time.Minute)
	if _, ok, _ := c.Get(ctx, "matrix:drive:[]"); ok {
		t.Fatalf("expected miss at expiry")
	}

	// Expired entries stay until overwritten.
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}

	if err := c.Set(ctx, "matrix:drive:[]", []byte("v2"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, _ = c.Get(ctx, "matrix:drive:[]")
	if !ok || string(v) != "v2" {
		t.Fatalf("expected overwritten value v2, got %q ok=%v", v, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}
