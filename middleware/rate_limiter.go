// middleware/rate_limiter.go
package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/huawei-ekit/catalog_backend/config"
)

const blockKeyPrefix = "ratelimit:blocked:"

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter applies per-IP token-bucket limits. IPs that exhaust their
// bucket are blocked for a cooldown period; the block list lives in
// Redis when a client is configured so restarts and replicas share it,
// and falls back to process memory otherwise.
type RateLimiter struct {
	ips            map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             *sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]*rate.Limiter),
		blockedIPs:     make(map[string]time.Time),
		mu:             &sync.RWMutex{},
		defaultLimit:   rate.Every(50 * time.Millisecond), // 20 requests per second
		defaultBurst:   40,
		blockDuration:  5 * time.Minute,
		endpointLimits: make(map[string]endpointLimit),
	}

	// The audit endpoint runs an unfiltered expanded fetch per call;
	// keep it slower than the public read path.
	limiter.endpointLimits["/api/admin/integrity/products/:productSlug"] = endpointLimit{
		limit: rate.Every(500 * time.Millisecond), // 2 requests per second
		burst: 5,
	}

	// Start cleanup routine
	go limiter.cleanupBlockedIPs()

	return limiter
}

func (r *RateLimiter) cleanupBlockedIPs() {
	for {
		time.Sleep(1 * time.Hour)
		r.mu.Lock()
		now := time.Now()
		for ip, blockUntil := range r.blockedIPs {
			if now.After(blockUntil) {
				delete(r.blockedIPs, ip)
				// Also remove the limiter to reset its state
				delete(r.ips, ip)
			}
		}
		r.mu.Unlock()
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if blockUntil, blocked := r.blockedUntil(c.Request().Context(), ip); blocked {
				return c.JSON(429, map[string]string{
					"message":    "IP address blocked due to too many requests",
					"retryAfter": blockUntil.Format(time.RFC3339),
				})
			}

			// Get endpoint-specific limits
			path := c.Path()
			limit := r.defaultLimit
			burst := r.defaultBurst

			if override, exists := r.endpointLimits[path]; exists {
				limit = override.limit
				burst = override.burst
			}

			limiter := r.getLimiter(ip, limit, burst)
			if !limiter.Allow() {
				blockUntil := time.Now().Add(r.blockDuration)
				r.block(c.Request().Context(), ip, blockUntil)
				return c.JSON(429, map[string]string{
					"message":    "Too many requests",
					"retryAfter": blockUntil.Format(time.RFC3339),
				})
			}

			return next(c)
		}
	}
}

// blockedUntil reports whether the IP is currently blocked, clearing
// expired in-memory blocks as a side effect.
func (r *RateLimiter) blockedUntil(ctx context.Context, ip string) (time.Time, bool) {
	if config.RedisClient != nil {
		value, err := config.RedisClient.Get(ctx, blockKeyPrefix+ip).Result()
		if err == nil {
			if blockUntil, parseErr := time.Parse(time.RFC3339, value); parseErr == nil {
				return blockUntil, true
			}
		}
		return time.Time{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	blockUntil, blocked := r.blockedIPs[ip]
	if !blocked {
		return time.Time{}, false
	}
	if time.Now().Before(blockUntil) {
		return blockUntil, true
	}
	// Block has expired - remove it and reset the limiter state
	delete(r.blockedIPs, ip)
	delete(r.ips, ip)
	return time.Time{}, false
}

func (r *RateLimiter) block(ctx context.Context, ip string, until time.Time) {
	if config.RedisClient != nil {
		// Redis expiry doubles as the cleanup routine.
		config.RedisClient.Set(ctx, blockKeyPrefix+ip, until.Format(time.RFC3339), time.Until(until))
		return
	}
	r.mu.Lock()
	r.blockedIPs[ip] = until
	r.mu.Unlock()
}

func (r *RateLimiter) getLimiter(ip string, limit rate.Limit, burst int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(limit, burst)
		r.ips[ip] = limiter
	}
	return limiter
}
