// Package ratelimit provides per-client-address rate limiting middleware for
// the versionlog HTTP routes.
package ratelimit

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/visualvc/versionlog/pkg/apiresponses"
)

// Config holds the token bucket parameters for one route class.
type Config struct {
	// PerMinute is the sustained number of requests allowed per minute.
	PerMinute int
	// Burst is the maximum number of requests allowed in a burst.
	Burst int
	// CleanupInterval is how often to clean up stale entries
	CleanupInterval time.Duration
	// MaxAge is how long to keep an entry after last access
	MaxAge time.Duration
}

// Route-class defaults. Registration and login are deliberately tight;
// browsing is generous and writes sit in between.

func DefaultRegisterConfig() Config {
	return Config{PerMinute: 3, Burst: 3, CleanupInterval: time.Minute, MaxAge: 5 * time.Minute}
}

func DefaultLoginConfig() Config {
	return Config{PerMinute: 5, Burst: 5, CleanupInterval: time.Minute, MaxAge: 5 * time.Minute}
}

func DefaultReadConfig() Config {
	return Config{PerMinute: 120, Burst: 30, CleanupInterval: time.Minute, MaxAge: 5 * time.Minute}
}

func DefaultWriteConfig() Config {
	return Config{PerMinute: 30, Burst: 10, CleanupInterval: time.Minute, MaxAge: 5 * time.Minute}
}

// entry holds rate limiter and last access time for a client address
type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// IPRateLimiter implements per-client-address rate limiting with automatic
// cleanup. Each route class gets its own limiter so exceeding the login quota
// never throttles browsing.
type IPRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  Config
	done    chan struct{}
}

// New creates a new per-address rate limiter with the given configuration
func New(cfg Config) *IPRateLimiter {
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 5 * time.Minute
	}

	rl := &IPRateLimiter{
		entries: make(map[string]*entry),
		config:  cfg,
		done:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow checks if a request from the given client address should be allowed
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, exists := rl.entries[ip]
	if !exists {
		e = &entry{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.config.PerMinute)/60.0), rl.config.Burst),
		}
		rl.entries[ip] = e
	}
	e.lastAccess = time.Now()

	return e.limiter.Allow()
}

// Middleware returns a Gin middleware that rejects over-quota requests with
// 429 before any auth or handler logic runs.
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			apiresponses.RespondTooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Stop stops the cleanup goroutine
func (rl *IPRateLimiter) Stop() {
	close(rl.done)
}

// cleanup periodically removes stale entries
func (rl *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.cleanupStaleEntries()
		}
	}
}

// cleanupStaleEntries removes entries that haven't been accessed recently
func (rl *IPRateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, e := range rl.entries {
		if now.Sub(e.lastAccess) > rl.config.MaxAge {
			delete(rl.entries, ip)
		}
	}
}

// Len returns the current number of tracked addresses (for testing/metrics)
func (rl *IPRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

// Config returns a copy of the current configuration (for testing)
func (rl *IPRateLimiter) Config() Config {
	return rl.config
}

// FromRouteLimit builds a Config from the YAML rate limit settings, falling
// back to def for unset values.
func FromRouteLimit(perMinute, burst int, def Config) Config {
	cfg := def
	if perMinute > 0 {
		cfg.PerMinute = perMinute
	}
	if burst > 0 {
		cfg.Burst = burst
	}
	return cfg
}
