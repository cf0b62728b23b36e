// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinerec/internal/models"
)

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	h := testServer(t, testEngine(t))
	rec, env := do(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != models.CodeRouteNotFound {
		t.Errorf("Expected NOT_FOUND, got %+v", env.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := testServer(t, testEngine(t))
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/v1/recommendations"},
		{http.MethodPost, "/api/v1/titles/popular"},
		{http.MethodGet, "/recommend"},
	}

	for _, tt := range tests {
		rec, env := do(t, h, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status 405, got %d", tt.method, tt.path, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Code != models.CodeMethodNotAllowed {
			t.Errorf("%s %s: expected METHOD_NOT_ALLOWED, got %+v", tt.method, tt.path, env.Error)
		}
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	t.Parallel()

	h := testServer(t, testEngine(t))
	rec, env := do(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/titles/search?q=fargo", nil))

	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("Expected generated X-Request-ID header")
	}
	if env.Metadata.RequestID != id {
		t.Errorf("Expected metadata request id %q, got %q", id, env.Metadata.RequestID)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	h := testServer(t, testEngine(t))
	do(t, h, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?title=fargo", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"api_requests_total", "recommend_requests_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected %s in metrics output", name)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity(nil, 2, time.Minute, false)
	h := NewRouter(NewHandler(testEngine(t), "test"), mw).Setup()

	newReq := func(path string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:40000"
		return req
	}

	for i := 0; i < 2; i++ {
		rec, _ := do(t, h, newReq("/api/v1/titles/search?q=fargo"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
	}

	rec, env := do(t, h, newReq("/api/v1/titles/search?q=fargo"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != models.CodeRateLimited {
		t.Errorf("Expected RATE_LIMIT_EXCEEDED, got %+v", env.Error)
	}

	// Probes are exempt.
	rec, _ = do(t, h, newReq("/api/v1/health/live"))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected health probe to bypass the limiter, got %d", rec.Code)
	}
}

func TestRouter_RateLimitSharedAcrossRoutes(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity(nil, 2, time.Minute, false)
	h := NewRouter(NewHandler(testEngine(t), "test"), mw).Setup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/search?q=fargo", nil)
		req.RemoteAddr = "203.0.113.8:40000"
		rec, _ := do(t, h, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader("movie_title=Fargo"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.8:40000"
	rec, _ := do(t, h, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected the legacy route to share the exhausted budget, got %d", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity([]string{"https://app.example"}, 100, time.Minute, true)
	h := NewRouter(NewHandler(testEngine(t), "test"), mw).Setup()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/titles/search?q=fargo", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header for unknown origin, got %q", got)
	}
}
