// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"
	"time"
)

// Meta holds the SEO meta tag data for one page, delivered to the frontend
// alongside the content it describes.
type Meta struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Canonical     string `json:"canonical,omitempty"`
	OGTitle       string `json:"og_title,omitempty"`
	OGDescription string `json:"og_description,omitempty"`
	OGImage       string `json:"og_image,omitempty"`
	OGType        string `json:"og_type,omitempty"`
	OGSiteName    string `json:"og_site_name,omitempty"`
	OGURL         string `json:"og_url,omitempty"`
	TwitterCard   string `json:"twitter_card,omitempty"`
}

// ContentData contains content information for building meta tags. Path is
// the public path of the item, e.g. "/posts/hello-world".
type ContentData struct {
	Title       string
	Summary     string
	Body        string // HTML; used as description fallback
	Path        string
	ImagePath   string
	PublishedAt *time.Time
	AuthorName  string
}

// SiteConfig contains the site-wide settings used for SEO output.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultImage    string
}

// BuildMeta creates a Meta from content and site data with fallbacks. A nil
// content produces homepage meta.
func BuildMeta(content *ContentData, site *SiteConfig) *Meta {
	meta := &Meta{
		OGType:      "website",
		TwitterCard: "summary_large_image",
		OGSiteName:  site.SiteName,
	}

	if content == nil {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
		meta.Description = site.SiteDescription
		meta.OGDescription = site.SiteDescription
		meta.Canonical = site.SiteURL
		meta.OGURL = site.SiteURL
		if site.DefaultImage != "" {
			meta.OGImage = makeAbsoluteURL(site.DefaultImage, site.SiteURL)
		}
		return meta
	}

	meta.OGType = "article"
	meta.Title = content.Title
	meta.OGTitle = content.Title

	// Description: summary, then truncated body text.
	if content.Summary != "" {
		meta.Description = content.Summary
	} else if content.Body != "" {
		meta.Description = truncateText(stripHTML(content.Body), 160)
	}
	meta.OGDescription = meta.Description

	// Image: own image, then site default.
	if content.ImagePath != "" {
		meta.OGImage = makeAbsoluteURL(content.ImagePath, site.SiteURL)
	} else if site.DefaultImage != "" {
		meta.OGImage = makeAbsoluteURL(site.DefaultImage, site.SiteURL)
	}

	meta.Canonical = site.SiteURL + content.Path
	meta.OGURL = meta.Canonical

	return meta
}

// ArticleSchema represents JSON-LD Article structured data.
type ArticleSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	Author           *PersonSchema `json:"author,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage,omitempty"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Context  string   `json:"@context,omitempty"`
	Type     string   `json:"@type"`
	Name     string   `json:"name"`
	JobTitle string   `json:"jobTitle,omitempty"`
	Image    string   `json:"image,omitempty"`
	Email    string   `json:"email,omitempty"`
	URL      string   `json:"url,omitempty"`
	SameAs   []string `json:"sameAs,omitempty"`
}

// WebSiteSchema represents JSON-LD WebSite structured data for the homepage.
type WebSiteSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// BuildArticleSchema creates JSON-LD Article data for a post or project.
func BuildArticleSchema(content *ContentData, site *SiteConfig, modifiedAt time.Time) json.RawMessage {
	if content == nil {
		return nil
	}

	article := ArticleSchema{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         content.Title,
		Description:      content.Summary,
		MainEntityOfPage: site.SiteURL + content.Path,
	}

	if content.ImagePath != "" {
		article.Image = makeAbsoluteURL(content.ImagePath, site.SiteURL)
	}
	if content.PublishedAt != nil {
		article.DatePublished = content.PublishedAt.Format(time.RFC3339)
	}
	if !modifiedAt.IsZero() {
		article.DateModified = modifiedAt.Format(time.RFC3339)
	}
	if content.AuthorName != "" {
		article.Author = &PersonSchema{Type: "Person", Name: content.AuthorName}
	}

	return marshalJSONLD(article)
}

// ProfileData carries the owner's bio card fields used for Person schema.
type ProfileData struct {
	Name        string
	Title       string
	PhotoPath   string
	Email       string
	Website     string
	GithubURL   string
	LinkedinURL string
}

// BuildPersonSchema creates JSON-LD Person data for the site owner.
func BuildPersonSchema(profile *ProfileData, site *SiteConfig) json.RawMessage {
	if profile == nil || profile.Name == "" {
		return nil
	}

	person := PersonSchema{
		Context:  "https://schema.org",
		Type:     "Person",
		Name:     profile.Name,
		JobTitle: profile.Title,
		Email:    profile.Email,
		URL:      site.SiteURL,
	}
	if profile.PhotoPath != "" {
		person.Image = makeAbsoluteURL(profile.PhotoPath, site.SiteURL)
	}
	for _, link := range []string{profile.Website, profile.GithubURL, profile.LinkedinURL} {
		if link != "" {
			person.SameAs = append(person.SameAs, link)
		}
	}

	return marshalJSONLD(person)
}

// BuildWebSiteSchema creates JSON-LD WebSite data for the homepage.
func BuildWebSiteSchema(site *SiteConfig) json.RawMessage {
	return marshalJSONLD(WebSiteSchema{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        site.SiteName,
		URL:         site.SiteURL,
		Description: site.SiteDescription,
	})
}

// marshalJSONLD marshals structured data for embedding in a JSON response.
func marshalJSONLD(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// stripHTML removes HTML tags from a string.
func stripHTML(html string) string {
	var result strings.Builder
	inTag := false
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ')
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	// Collapse whitespace
	return strings.Join(strings.Fields(result.String()), " ")
}

// truncateText truncates text to maxLen characters at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending the site URL.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
