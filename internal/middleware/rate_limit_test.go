package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 2)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Error("First request should be allowed")
	}
	if !rl.Allow("10.0.0.1") {
		t.Error("Second request within burst should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Third request should exceed the burst")
	}

	// A different client has its own budget
	if !rl.Allow("10.0.0.2") {
		t.Error("Request from a different client should be allowed")
	}
}

func TestRateLimitMiddleware_Exceeded(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	mw := RateLimitMiddleware(rl)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return rec
	}

	if rec := run(); rec.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", rec.Code)
	}
	rec := run()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
}
