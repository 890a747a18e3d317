// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"cikmap_backend/internal/platform/config"
	"cikmap_backend/internal/platform/externalapi/sec"
	infrahttp "cikmap_backend/internal/platform/http"
	"cikmap_backend/internal/shared/ratelimiter"
)

// NewSecDirectory creates a fully configured SEC TickerDirectory with HTTP client and rate limiter.
func NewSecDirectory(cfg config.SECConfig) *sec.TickerDirectory {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, infrahttp.WithRequestLogging(slog.Default()))
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)
	return sec.NewTickerDirectory(sec.Config{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}, httpClient, limiter)
}
