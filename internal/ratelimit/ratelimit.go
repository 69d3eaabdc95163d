// Package ratelimit throttles requests per client key with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// defaultMaxKeys bounds memory. Past it, refilled buckets are dropped first,
// then the least recently seen one.
const defaultMaxKeys = 10000

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	maxKeys int
	now     func() time.Time
}

// New allows perMinute events per key on average, with bursts of burst.
func New(perMinute, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:   burst,
		maxKeys: defaultMaxKeys,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed now, consuming a token if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			l.evict(now)
		}
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	return b.lim.AllowN(now, 1)
}

// evict makes room for one key. A bucket back at full burst behaves exactly
// like a new one, so those go without changing any client's allowance. Only
// when none has refilled is the least recently seen key dropped.
// Caller holds l.mu.
func (l *Limiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, b := range l.buckets {
		if b.lim.TokensAt(now) >= float64(l.burst) {
			delete(l.buckets, k)
			continue
		}
		if !found || b.seen.Before(oldest) {
			oldestKey, oldest, found = k, b.seen, true
		}
	}
	if found && len(l.buckets) >= l.maxKeys {
		delete(l.buckets, oldestKey)
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (l *Limiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			log.Warn().
				Str("ip", c.IP()).
				Str("path", c.Path()).
				Msg("rate limit exceeded")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		}
		return c.Next()
	}
}
