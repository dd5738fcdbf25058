package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func testCache(t *testing.T, ttl time.Duration) *RenderCache {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := New(context.Background(), "redis://"+mr.Addr(), ttl, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRenderCacheGetSet(t *testing.T) {
	c := testCache(t, time.Minute)
	ctx := context.Background()

	if got := c.Get(ctx, "go-errors"); got != "" {
		t.Errorf("Get on empty cache = %q, want miss", got)
	}

	c.Set(ctx, "go-errors", "<h2>rendered</h2>")
	if got := c.Get(ctx, "go-errors"); got != "<h2>rendered</h2>" {
		t.Errorf("Get = %q, want cached HTML", got)
	}

	// Keys are per article.
	if got := c.Get(ctx, "go-context"); got != "" {
		t.Errorf("Get for other article = %q, want miss", got)
	}
}

func TestRenderCacheInvalidate(t *testing.T) {
	c := testCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "go-errors", "<p>old</p>")
	c.Invalidate(ctx, "go-errors")

	if got := c.Get(ctx, "go-errors"); got != "" {
		t.Errorf("Get after invalidate = %q, want miss", got)
	}
}

func TestRenderCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := New(context.Background(), "redis://"+mr.Addr(), time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "go-errors", "<p>html</p>")
	mr.FastForward(2 * time.Minute)

	if got := c.Get(ctx, "go-errors"); got != "" {
		t.Errorf("Get after TTL = %q, want miss", got)
	}
}

func TestRenderCacheNilIsNoOp(t *testing.T) {
	var c *RenderCache
	ctx := context.Background()

	// A nil cache stands in when caching is not configured; every method
	// must be safe to call.
	c.Set(ctx, "go-errors", "<p>html</p>")
	if got := c.Get(ctx, "go-errors"); got != "" {
		t.Errorf("Nil cache Get = %q, want miss", got)
	}
	c.Invalidate(ctx, "go-errors")
	if err := c.Close(); err != nil {
		t.Errorf("Nil cache Close = %v", err)
	}
}

func TestRenderCacheBadURL(t *testing.T) {
	if _, err := New(context.Background(), "not-a-url", time.Minute, zerolog.Nop()); err == nil {
		t.Error("Expected error for malformed redis url")
	}
}
