package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAllowRefills(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys have separate buckets")

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestIdleBucketsAreDropped(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, l.Allow(ip))
	}
	assert.True(t, l.Allow("10.0.0.3"))
	assert.Equal(t, 3, l.Len())

	// every bucket refilled long ago; the next call sweeps them
	now = now.Add(2 * sweepInterval)
	assert.True(t, l.Allow("10.0.0.4"))
	assert.Equal(t, 1, l.Len())
}

func TestSweepKeepsDrainedBuckets(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	l := New(1, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	now = now.Add(2 * sweepInterval)
	assert.False(t, l.Allow("a"), "a bucket without refill stays empty")
	assert.Equal(t, 1, l.Len())
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	l := New(1, 0)
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, l.Middleware())

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
