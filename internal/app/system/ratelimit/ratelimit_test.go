package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/commonshub/internal/app/system/ratelimit"
)

func TestAllow(t *testing.T) {
	l := ratelimit.New(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("a") {
		t.Error("third request within the window should be denied")
	}
	// Other keys have their own windows.
	if !l.Allow("b") {
		t.Error("fresh key should be allowed")
	}
}

func TestRemaining(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	if got := l.Remaining("a"); got != 3 {
		t.Errorf("remaining before any request: got %d, want 3", got)
	}
	l.Allow("a")
	if got := l.Remaining("a"); got != 2 {
		t.Errorf("remaining after one request: got %d, want 2", got)
	}
}

func TestMiddleware(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status: got %d, want 429", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	if got := ratelimit.ClientIP(req); got != "203.0.113.9" {
		t.Errorf("remote addr: got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := ratelimit.ClientIP(req); got != "198.51.100.7" {
		t.Errorf("forwarded for: got %q", got)
	}
}
