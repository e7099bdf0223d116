package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
)

const msgRateLimited = "too many requests, please try again later"

// Counter increments a fixed-window counter and returns the new value
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// incrScript sets the expiry only on the first hit of a window
var incrScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RedisCounter keeps counters in Redis so every instance shares the limit
type RedisCounter struct {
	client redis.Scripter
	prefix string
}

// NewRedisCounter creates a counter backed by Redis keys under prefix
func NewRedisCounter(client redis.Scripter, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := incrScript.Run(ctx, c.client, []string{c.prefix + key}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: incr %s: %w", key, err)
	}
	return n, nil
}

// RateLimiter allows limit requests per client IP per window.
// When the counter store fails, requests pass and a warning is logged.
type RateLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	logger  Logger
}

// NewRateLimiter creates a limiter allowing limit requests per client within window
func NewRateLimiter(counter Counter, limit int, window time.Duration, logger Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		logger:  logger,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		n, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warn("RateLimit - counter unavailable, allowing request: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if n > rl.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
