package google

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit stays below the per-user quota shared by Sheets and Drive.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 8.0, BurstSize: 10}

// RateLimiter throttles Google API requests with a token bucket. It never
// retries; a rejected request is reported to the caller as is.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter. Non-positive values fall back to DefaultRateLimit.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRateLimit.RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultRateLimit.BurstSize
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// A nil limiter never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}
	return r.limiter.Allow()
}
