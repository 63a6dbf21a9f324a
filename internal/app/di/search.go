// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"company_intel/internal/feature/analysis/adapters/tavily"
	"company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/platform/cache"
	infrahttp "company_intel/internal/platform/http"
	"company_intel/internal/platform/ratelimiter"
)

// NewSearcher creates a rate-limited Tavily client.
// If Redis is available, results are cached for ttl.
func NewSearcher(rdb *redis.Client, ttl time.Duration) usecase.Searcher {
	cfg := tavily.LoadConfig()
	if cfg.APIKey == "" {
		slog.Warn("TAVILY_API_KEY is not set; searches will fail")
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	var searcher usecase.Searcher = tavily.NewClient(cfg, httpClient, limiter)

	if rdb != nil {
		searcher = cache.NewCachingSearcher(rdb, ttl, searcher, "search")
	}
	return searcher
}
