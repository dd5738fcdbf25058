// Package cache holds the rendered-HTML cache. Rendering an article body is
// deterministic, so the cache is keyed by article id only and invalidated
// whenever the article is saved or the store reloads.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func renderKey(articleID string) string {
	return "render:" + articleID
}

// RenderCache stores rendered article HTML in Redis. A nil *RenderCache is a
// valid no-op cache, so callers never have to branch on whether caching is
// configured.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, url string, ttl time.Duration, log zerolog.Logger) (*RenderCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RenderCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "render_cache").Logger(),
	}, nil
}

// Get returns the cached HTML for an article, or "" on a miss. Cache errors
// are logged and treated as misses; rendering is always available as the
// slow path.
func (c *RenderCache) Get(ctx context.Context, articleID string) string {
	if c == nil {
		return ""
	}
	html, err := c.client.Get(ctx, renderKey(articleID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("article_id", articleID).Msg("Cache read failed")
		}
		return ""
	}
	return html
}

// Set stores rendered HTML for an article.
func (c *RenderCache) Set(ctx context.Context, articleID, html string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, renderKey(articleID), html, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("article_id", articleID).Msg("Cache write failed")
	}
}

// Invalidate drops the cached HTML for an article.
func (c *RenderCache) Invalidate(ctx context.Context, articleID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, renderKey(articleID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("article_id", articleID).Msg("Cache invalidation failed")
	}
}

// Close releases the Redis connection.
func (c *RenderCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
