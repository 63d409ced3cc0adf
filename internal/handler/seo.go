// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/seo"
)

// SEOData bundles the meta tags and JSON-LD documents the frontend renders
// into a page head. Detail responses carry it; list responses stay light.
type SEOData struct {
	Meta    *seo.Meta         `json:"meta"`
	Schemas []json.RawMessage `json:"schemas,omitempty"`
}

// seoSite assembles the site-wide SEO inputs from settings and the base URL.
func (h *Handler) seoSite(ctx context.Context) (*seo.SiteConfig, error) {
	cfg, err := h.site.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &seo.SiteConfig{SiteName: cfg.SiteName, SiteURL: h.baseURL}, nil
}

// articleSEO builds the head data for a post or project detail page. A nil
// return means enrichment failed; the response still goes out without it.
func (h *Handler) articleSEO(ctx context.Context, content *seo.ContentData, modifiedAt time.Time) *SEOData {
	site, err := h.seoSite(ctx)
	if err != nil {
		h.logger.Warn("building seo data", "error", err)
		return nil
	}
	data := &SEOData{Meta: seo.BuildMeta(content, site)}
	if schema := seo.BuildArticleSchema(content, site, modifiedAt); schema != nil {
		data.Schemas = append(data.Schemas, schema)
	}
	return data
}

// profileSEO builds the homepage head data: site meta plus WebSite and
// Person JSON-LD from the owner's bio card.
func (h *Handler) profileSEO(ctx context.Context, profile model.Profile, tr model.ProfileTranslation) *SEOData {
	site, err := h.seoSite(ctx)
	if err != nil {
		h.logger.Warn("building seo data", "error", err)
		return nil
	}
	site.SiteDescription = tr.Bio
	site.DefaultImage = profile.PhotoPath

	data := &SEOData{Meta: seo.BuildMeta(nil, site)}
	data.Schemas = append(data.Schemas, seo.BuildWebSiteSchema(site))
	if schema := seo.BuildPersonSchema(&seo.ProfileData{
		Name:        tr.Name,
		Title:       tr.Title,
		PhotoPath:   profile.PhotoPath,
		Email:       profile.Email,
		Website:     profile.Website,
		GithubURL:   profile.GithubURL,
		LinkedinURL: profile.LinkedinURL,
	}, site); schema != nil {
		data.Schemas = append(data.Schemas, schema)
	}
	return data
}

// authorName returns the owner's name in the given language for Article
// schema attribution. Empty when no profile exists yet.
func (h *Handler) authorName(ctx context.Context, lang string) string {
	profile, err := h.queries.GetProfile(ctx)
	if err != nil {
		return ""
	}
	tr, _, err := h.profileTranslation(ctx, profile.ID, lang)
	if err != nil {
		return ""
	}
	return tr.Name
}
