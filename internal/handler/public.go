// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/seo"
	"github.com/olegiv/folio-go/internal/store"
)

// Healthz reports process liveness and database reachability.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "unhealthy", "Database unreachable", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Sitemap serves sitemap.xml with hreflang alternates for every active
// language. The rendered XML is cached until a post or project mutation
// invalidates it.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.content != nil {
		if data, err := h.content.Get(ctx, sitemapCacheKey); err == nil {
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
			_, _ = w.Write(data)
			return
		}
	}

	cfg, err := h.site.Get(ctx)
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	active, err := h.languages.GetActive(ctx)
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	codes := make([]string, 0, len(active))
	for _, l := range active {
		codes = append(codes, l.Code)
	}

	total, err := h.queries.CountPublishedPosts(ctx)
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	posts, err := h.queries.ListPublishedPosts(ctx, store.ListPostsParams{Limit: total, Offset: 0})
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	postEntries := make([]seo.Entry, 0, len(posts))
	for _, p := range posts {
		postEntries = append(postEntries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	projects, err := h.queries.ListProjects(ctx)
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	projectEntries := make([]seo.Entry, 0, len(projects))
	for _, p := range projects {
		projectEntries = append(projectEntries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	xml, err := seo.GenerateSitemap(h.baseURL, cfg.DefaultLanguage, codes, postEntries, projectEntries)
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	if h.content != nil {
		_ = h.content.Set(ctx, sitemapCacheKey, xml, 0)
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(xml)
}

// Robots serves robots.txt. Development deployments block all crawlers.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.baseURL, h.isDev, "")))
}

// SecurityTxt serves /.well-known/security.txt with the profile contact
// address, per RFC 9116.
func (h *Handler) SecurityTxt(w http.ResponseWriter, r *http.Request) {
	profile, err := h.queries.GetProfile(r.Context())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	txt := seo.GenerateSecurityTxt("mailto:"+profile.Email, time.Now().AddDate(1, 0, 0))
	_, _ = w.Write([]byte(txt))
}
