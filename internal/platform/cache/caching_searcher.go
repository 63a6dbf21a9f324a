// Package cache provides caching decorators for the search port.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"company_intel/internal/feature/analysis/domain/entity"
	"company_intel/internal/feature/analysis/usecase"
)

// CachingSearcher decorates a Searcher with Redis caching.
// Identical queries within the TTL are answered from Redis without calling the search API.
type CachingSearcher struct {
	inner     usecase.Searcher
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Searcher = (*CachingSearcher)(nil)

// NewCachingSearcher decorates a Searcher with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "search".
func NewCachingSearcher(rdb *redis.Client, ttl time.Duration, inner usecase.Searcher, namespace string) *CachingSearcher {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "search"
	}
	return &CachingSearcher{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Search returns cached results when present, otherwise searches and stores the results.
func (c *CachingSearcher) Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Search(ctx, query, maxResults)
	}

	key := c.cacheKey(query, maxResults)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.SearchResult
		if err := json.Unmarshal(b, &out); err == nil {
			slog.Debug("search cache hit", "key", key)
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("search cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to the live search
	out, err := c.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); empty results are not cached
	if len(out) == 0 {
		return out, nil
	}
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("search cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingSearcher) cacheKey(query string, maxResults int) string {
	return fmt.Sprintf("%s:%d:%s", c.namespace, maxResults, safe(strings.ToLower(strings.TrimSpace(query))))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
