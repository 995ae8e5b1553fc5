package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shoppinh/jp-order-BE/internal/http/response"
)

// fixedWindowScript counts one hit and returns {count, pttl}. The window key
// gains its expiry on the first hit so the window starts with the first
// attempt, not the first rejection.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RedisFixedWindowLimiter counts hits per key in fixed windows backed by
// redis, so limits hold across instances.
type RedisFixedWindowLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

func NewRedisFixedWindowLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *RedisFixedWindowLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisFixedWindowLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow records one hit for the key. A nil or failing redis lets the
// request through: availability beats strictness for a login limiter.
func (l *RedisFixedWindowLimiter) Allow(r *http.Request, key string) (Decision, error) {
	if l.client == nil {
		return Decision{Allowed: true, Remaining: l.limit}, nil
	}
	if key == "" {
		key = "unknown"
	}
	storeKey := fmt.Sprintf("%s:%s", l.prefix, key)
	windowMS := int64(l.window / time.Millisecond)

	raw, err := fixedWindowScript.Run(r.Context(), l.client, []string{storeKey}, windowMS).Result()
	if err != nil {
		return Decision{Allowed: true, Remaining: l.limit}, err
	}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return Decision{Allowed: true, Remaining: l.limit}, fmt.Errorf("unexpected redis script response type %T", raw)
	}
	count, ok := values[0].(int64)
	if !ok {
		return Decision{Allowed: true, Remaining: l.limit}, fmt.Errorf("unexpected count type %T", values[0])
	}
	ttl, ok := values[1].(int64)
	if !ok {
		ttl = windowMS
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:    int(count) <= l.limit,
		Remaining:  remaining,
		RetryAfter: time.Duration(ttl) * time.Millisecond,
	}, nil
}

// LoginRateLimit limits requests per client IP. Over-limit requests get a
// 429 with a Retry-After header.
func LoginRateLimit(limiter *RedisFixedWindowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, _ := limiter.Allow(r, clientIP(r))
			if !decision.Allowed {
				seconds := int(decision.RetryAfter / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				response.Error(w, http.StatusTooManyRequests, "too many login attempts")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
