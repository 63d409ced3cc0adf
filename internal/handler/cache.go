// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/model"
)

const sitemapCacheKey = "sitemap.xml"

// invalidateContentCache drops the cached public payloads a save or
// delete of the given entity type can affect.
func (h *Handler) invalidateContentCache(ctx context.Context, entityType string) {
	switch entityType {
	case model.EntityTypeExperience, model.EntityTypeEducation:
		h.invalidateCVCache(ctx)
	case model.EntityTypePost, model.EntityTypeProject:
		h.invalidateSitemapCache(ctx)
	}
}

// invalidateCVCache drops cached CV payloads for every configured
// language after a resume mutation.
func (h *Handler) invalidateCVCache(ctx context.Context) {
	if h.content == nil {
		return
	}
	langs, err := h.languages.GetAll(ctx)
	if err != nil {
		return
	}
	for _, l := range langs {
		_ = h.content.Delete(ctx, cache.NewContext(l.Code).Key("cv"))
	}
}

// flushContentCache clears every cached public payload. Language set
// changes move cache keys and hreflang alternates, so everything goes.
func (h *Handler) flushContentCache(ctx context.Context) {
	if h.content == nil {
		return
	}
	_ = h.content.Clear(ctx)
}

// invalidateSitemapCache drops the cached sitemap after a post or
// project mutation changes the published URL set.
func (h *Handler) invalidateSitemapCache(ctx context.Context) {
	if h.content == nil {
		return
	}
	_ = h.content.Delete(ctx, sitemapCacheKey)
}
