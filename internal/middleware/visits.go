// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// visitSkipPrefixes lists path prefixes that never count as public visits.
var visitSkipPrefixes = []string{
	"/api/admin",
	"/uploads",
	"/static",
	"/favicon",
	"/healthz",
	"/robots.txt",
	"/sitemap.xml",
}

// TrackVisits creates middleware that records anonymized page view analytics
// for public GET requests. Only aggregate dimensions are stored: path,
// referer host, browser, OS, device class, and country. The client IP is
// used for the country lookup and then discarded.
func TrackVisits(db *sql.DB, geo *geoip.Lookup) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if r.Method != http.MethodGet || skipVisit(r.URL.Path) {
				return
			}

			visit := buildVisit(r, geo)

			// Analytics must never block or fail the request.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := queries.CreateVisit(ctx, visit); err != nil {
					slog.Error("failed to record visit", "error", err, "path", visit.Path)
				}
			}()
		})
	}
}

func skipVisit(path string) bool {
	for _, prefix := range visitSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func buildVisit(r *http.Request, geo *geoip.Lookup) store.CreateVisitParams {
	ua := useragent.Parse(r.UserAgent())

	visit := store.CreateVisitParams{
		Path:      r.URL.Path,
		Referer:   refererHost(r.Referer()),
		Browser:   ua.Name,
		OS:        ua.OS,
		Device:    deviceClass(ua),
		CreatedAt: time.Now(),
	}

	if geo != nil && geo.IsEnabled() {
		ip := util.ClientIP(r)
		if parsed := net.ParseIP(ip); parsed != nil && !util.IsPrivateIP(parsed) {
			visit.Country = geo.LookupCountry(ip)
		}
	}

	return visit
}

// deviceClass maps a parsed user agent to one of the stored device classes.
func deviceClass(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return model.DeviceBot
	case ua.Tablet:
		return model.DeviceTablet
	case ua.Mobile:
		return model.DeviceMobile
	default:
		return model.DeviceDesktop
	}
}

// refererHost reduces a referer URL to its host to avoid storing full URLs
// with query strings.
func refererHost(referer string) string {
	if referer == "" {
		return ""
	}
	rest := referer
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	if idx := strings.IndexAny(rest, "/?#"); idx != -1 {
		rest = rest[:idx]
	}
	return rest
}
