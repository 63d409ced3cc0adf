// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, http.StatusNotFound, "not_found", "Post not found.")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp JSONError
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error.Code != "not_found" {
		t.Errorf("code = %q, want not_found", resp.Error.Code)
	}
	if resp.Error.Message != "Post not found." {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestLimiterCache(t *testing.T) {
	lc := newLimiterCache[string](1, 2)

	a := lc.get("10.0.0.1")
	if a == nil {
		t.Fatal("expected limiter")
	}
	if lc.get("10.0.0.1") != a {
		t.Error("expected same limiter for same key")
	}
	if lc.get("10.0.0.2") == a {
		t.Error("expected distinct limiter for distinct key")
	}
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")
	lc.get("c")

	if lc.clearIfExceeds(5) {
		t.Error("should not clear below max size")
	}
	if !lc.clearIfExceeds(2) {
		t.Error("should clear above max size")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("limiters left after clear: %d", len(lc.limiters))
	}
}

func TestIPRateLimiterAllow(t *testing.T) {
	rl := NewIPRateLimiter(1, 2)

	if !rl.Allow("192.0.2.1") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("192.0.2.1") {
		t.Error("second request within burst should be allowed")
	}
	if rl.Allow("192.0.2.1") {
		t.Error("third request should exceed burst")
	}
	// Other IPs are unaffected.
	if !rl.Allow("192.0.2.2") {
		t.Error("different IP should have its own limiter")
	}
}

func TestIPRateLimiterMiddleware(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "192.0.2.10:51234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("first request status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w.Code)
	}

	var resp JSONError
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error.Code != "rate_limit_exceeded" {
		t.Errorf("code = %q, want rate_limit_exceeded", resp.Error.Code)
	}
}
