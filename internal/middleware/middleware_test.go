package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_PerIP(t *testing.T) {
	h := RateLimit(0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:3333"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111"))
}

func TestIPRateLimiter_SweepsIdleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	now := time.Now()

	require.True(t, rl.allow("a", now))
	require.False(t, rl.allow("a", now))

	later := now.Add(visitorIdleTTL + time.Second)
	assert.True(t, rl.allow("b", later))
	rl.mu.Lock()
	_, stillThere := rl.visitors["a"]
	rl.mu.Unlock()
	assert.False(t, stillThere)
}

func TestLogger_RequestID(t *testing.T) {
	var seen string
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestIPRateLimiter_SweepsAtMostOncePerTTL(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	base := rl.lastSweep

	require.True(t, rl.allow("stale", base.Add(-2*visitorIdleTTL)))

	has := func(ip string) bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		_, ok := rl.visitors[ip]
		return ok
	}

	require.True(t, rl.allow("b", base.Add(time.Second)))
	assert.True(t, has("stale"), "sweep ran before it was due")
	assert.Equal(t, base, rl.lastSweep)

	require.True(t, rl.allow("c", base.Add(visitorIdleTTL)))
	assert.False(t, has("stale"))
	assert.True(t, has("b"))
	assert.Equal(t, base.Add(visitorIdleTTL), rl.lastSweep)
}
