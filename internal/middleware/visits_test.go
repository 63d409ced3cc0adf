// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// waitForVisits polls until the visits table holds want rows or the deadline
// passes. Visit inserts are asynchronous.
func waitForVisits(t *testing.T, queries *store.Queries, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		n, err := queries.CountVisitsSince(context.Background(), time.Time{})
		if err != nil {
			t.Fatalf("CountVisitsSince: %v", err)
		}
		if n >= want {
			if n > want {
				t.Fatalf("visits = %d, want %d", n, want)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d visits", want)
}

func TestTrackVisits_RecordsGET(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	queries := store.New(db)

	handler := TrackVisits(db, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts/hello-world", nil)
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Referer", "https://news.ycombinator.com/item?id=1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	waitForVisits(t, queries, 1)
}

func TestTrackVisits_SkipsNonGETAndInternalPaths(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	queries := store.New(db)

	handler := TrackVisits(db, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/contact"},
		{http.MethodGet, "/api/admin/posts"},
		{http.MethodGet, "/uploads/thumbnail/abc/photo.jpg"},
		{http.MethodGet, "/healthz"},
		{http.MethodGet, "/sitemap.xml"},
	}
	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("User-Agent", chromeUA)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// Give any stray goroutine time to land before asserting zero.
	time.Sleep(50 * time.Millisecond)
	n, err := queries.CountVisitsSince(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("CountVisitsSince: %v", err)
	}
	if n != 0 {
		t.Errorf("visits = %d, want 0", n)
	}
}

func TestBuildVisit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/projects/folio", nil)
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Referer", "https://example.com/some/page?q=1")

	visit := buildVisit(req, nil)

	if visit.Path != "/projects/folio" {
		t.Errorf("Path = %q", visit.Path)
	}
	if visit.Referer != "example.com" {
		t.Errorf("Referer = %q, want example.com", visit.Referer)
	}
	if visit.Browser != "Chrome" {
		t.Errorf("Browser = %q, want Chrome", visit.Browser)
	}
	if visit.Device != model.DeviceDesktop {
		t.Errorf("Device = %q, want desktop", visit.Device)
	}
	if visit.Country != "" {
		t.Errorf("Country = %q, want empty without geoip", visit.Country)
	}
}

func TestDeviceClass(t *testing.T) {
	tests := []struct {
		name string
		ua   useragent.UserAgent
		want string
	}{
		{"bot", useragent.UserAgent{Bot: true}, model.DeviceBot},
		{"bot beats mobile", useragent.UserAgent{Bot: true, Mobile: true}, model.DeviceBot},
		{"tablet", useragent.UserAgent{Tablet: true}, model.DeviceTablet},
		{"mobile", useragent.UserAgent{Mobile: true}, model.DeviceMobile},
		{"desktop", useragent.UserAgent{Desktop: true}, model.DeviceDesktop},
		{"unknown", useragent.UserAgent{}, model.DeviceDesktop},
	}

	for _, tt := range tests {
		if got := deviceClass(tt.ua); got != tt.want {
			t.Errorf("%s: deviceClass = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRefererHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://example.com", "example.com"},
		{"https://example.com/path?q=1", "example.com"},
		{"http://sub.example.com:8080/x", "sub.example.com:8080"},
		{"example.com/path", "example.com"},
	}

	for _, tt := range tests {
		if got := refererHost(tt.in); got != tt.want {
			t.Errorf("refererHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
