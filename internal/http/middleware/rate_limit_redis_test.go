package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLimiterForTest(t *testing.T, limit int, window time.Duration) (*RedisFixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFixedWindowLimiter(client, "test_rl", limit, window), srv
}

func TestFixedWindowLimiterCountsPerKey(t *testing.T) {
	limiter, _ := newLimiterForTest(t, 3, time.Minute)
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(req, "1.2.3.4")
		if err != nil {
			t.Fatalf("allow #%d: %v", i, err)
		}
		if !decision.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
	}
	decision, err := limiter.Allow(req, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if decision.Allowed {
		t.Fatal("fourth attempt should be rejected")
	}
	if decision.RetryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", decision.RetryAfter)
	}

	// Other keys have their own window.
	other, err := limiter.Allow(req, "5.6.7.8")
	if err != nil {
		t.Fatalf("allow other key: %v", err)
	}
	if !other.Allowed {
		t.Fatal("distinct key should not share the window")
	}
}

func TestFixedWindowLimiterResetsAfterWindow(t *testing.T) {
	limiter, srv := newLimiterForTest(t, 1, time.Minute)
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	if d, _ := limiter.Allow(req, "1.2.3.4"); !d.Allowed {
		t.Fatal("first attempt should pass")
	}
	if d, _ := limiter.Allow(req, "1.2.3.4"); d.Allowed {
		t.Fatal("second attempt should be rejected")
	}

	srv.FastForward(2 * time.Minute)
	if d, _ := limiter.Allow(req, "1.2.3.4"); !d.Allowed {
		t.Fatal("attempt after window should pass")
	}
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	limiter, _ := newLimiterForTest(t, 1, time.Minute)
	handler := LoginRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestLimiterFailsOpenWithoutRedis(t *testing.T) {
	limiter := NewRedisFixedWindowLimiter(nil, "", 1, time.Minute)
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	for i := 0; i < 5; i++ {
		decision, err := limiter.Allow(req, "1.2.3.4")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !decision.Allowed {
			t.Fatal("expected fail-open behavior without redis")
		}
	}
}
