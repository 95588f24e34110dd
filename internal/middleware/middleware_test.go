package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baderkothman/admin-dashboard/internal/middleware"
)

// call sends one GET through the middleware-wrapped 200-OK handler, with an
// optional Origin header, and returns the recorded response.
func call(t *testing.T, mw func(http.Handler) http.Handler, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(method, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestCORSMiddleware_AllowedOrigin verifies a listed origin is echoed back
// with credentials enabled.
func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"http://localhost:5173"})

	rec := call(t, mw, http.MethodGet, "http://localhost:5173")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials allowed, got %q", got)
	}
}

// TestCORSMiddleware_UnlistedOrigin verifies an unlisted origin gets no CORS
// headers but the request still reaches the handler.
func TestCORSMiddleware_UnlistedOrigin(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"http://localhost:5173"})

	rec := call(t, mw, http.MethodGet, "https://evil.example.com")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
}

// TestCORSMiddleware_Preflight verifies OPTIONS requests short-circuit with
// 204 and never reach the inner handler.
func TestCORSMiddleware_Preflight(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"http://localhost:5173"})

	rec := call(t, mw, http.MethodOptions, "http://localhost:5173")

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

// TestRateLimitMiddleware_Burst verifies requests beyond the burst are
// rejected with 429 while the burst itself passes.
func TestRateLimitMiddleware_Burst(t *testing.T) {
	mw := middleware.RateLimitMiddleware(1, 3)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/locations", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i, codes[i])
		}
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("request 4: expected 429, got %d", codes[3])
	}
}

// TestRateLimitMiddleware_PerClient verifies limits are tracked per client
// key, so one client exhausting its bucket does not block another.
func TestRateLimitMiddleware_PerClient(t *testing.T) {
	mw := middleware.RateLimitMiddleware(1, 1)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/locations", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first client: expected 200, got %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("first client again: expected 429, got %d", code)
	}
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second client: expected 200, got %d", code)
	}
}

// TestRateLimitMiddleware_ForwardedFor verifies the first X-Forwarded-For
// hop identifies the client when the service sits behind a proxy.
func TestRateLimitMiddleware_ForwardedFor(t *testing.T) {
	mw := middleware.RateLimitMiddleware(1, 1)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	send := func(fwd string) int {
		req := httptest.NewRequest(http.MethodPost, "/locations", nil)
		req.RemoteAddr = "127.0.0.1:9999" // same proxy for everyone
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("203.0.113.7, 127.0.0.1"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := send("203.0.113.7, 127.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("same forwarded client: expected 429, got %d", code)
	}
	if code := send("203.0.113.8, 127.0.0.1"); code != http.StatusOK {
		t.Errorf("different forwarded client: expected 200, got %d", code)
	}
}
