// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemaps, robots.txt, security.txt, and meta/structured
// data for the public site.
package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// XHTMLNamespace is the namespace for hreflang alternate links.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// AlternateLink is an xhtml:link hreflang entry pointing at a language
// variant of the same content.
type AlternateLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []AlternateLink `xml:"xhtml:link,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr,omitempty"`
	URLs       []SitemapURL `xml:"url"`
}

// Entry contains the data needed to add one content item to the sitemap.
type Entry struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder builds sitemap XML for the public content, emitting
// hreflang alternates for every active language.
type SitemapBuilder struct {
	siteURL     string
	languages   []string // active language codes
	defaultLang string
	urls        []SitemapURL
}

// NewSitemapBuilder creates a sitemap builder. languages lists the active
// language codes; defaultLang is the language the bare URLs serve.
func NewSitemapBuilder(siteURL, defaultLang string, languages []string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL:     siteURL,
		languages:   languages,
		defaultLang: defaultLang,
	}
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
		Alternates: b.alternates(""),
	})
}

// AddPost adds a blog post to the sitemap.
func (b *SitemapBuilder) AddPost(entry Entry) {
	b.add("/posts/"+entry.Slug, entry.UpdatedAt, ChangeFreqWeekly, "0.8")
}

// AddPosts adds multiple blog posts to the sitemap.
func (b *SitemapBuilder) AddPosts(entries []Entry) {
	for _, e := range entries {
		b.AddPost(e)
	}
}

// AddProject adds a portfolio project to the sitemap.
func (b *SitemapBuilder) AddProject(entry Entry) {
	b.add("/projects/"+entry.Slug, entry.UpdatedAt, ChangeFreqMonthly, "0.7")
}

// AddProjects adds multiple projects to the sitemap.
func (b *SitemapBuilder) AddProjects(entries []Entry) {
	for _, e := range entries {
		b.AddProject(e)
	}
}

func (b *SitemapBuilder) add(path string, updatedAt time.Time, freq ChangeFreq, priority string) {
	url := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: freq,
		Priority:   priority,
		Alternates: b.alternates(path),
	}
	if !updatedAt.IsZero() {
		url.LastMod = updatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// alternates builds hreflang links for every active language plus x-default.
// With a single language there are no variants worth announcing.
func (b *SitemapBuilder) alternates(path string) []AlternateLink {
	if len(b.languages) < 2 {
		return nil
	}

	links := make([]AlternateLink, 0, len(b.languages)+1)
	for _, code := range b.languages {
		href := b.siteURL + path
		if code != b.defaultLang {
			href += "?lang=" + code
		}
		links = append(links, AlternateLink{
			Rel:      "alternate",
			Hreflang: code,
			Href:     href,
		})
	}
	links = append(links, AlternateLink{
		Rel:      "alternate",
		Hreflang: "x-default",
		Href:     b.siteURL + path,
	})
	return links
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	if len(b.languages) >= 2 {
		sitemap.XMLNSXHTML = XHTMLNamespace
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap is a convenience function to generate a sitemap from the
// published content.
func GenerateSitemap(siteURL, defaultLang string, languages []string, posts, projects []Entry) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL, defaultLang, languages)
	builder.AddHomepage()
	builder.AddPosts(posts)
	builder.AddProjects(projects)
	return builder.Build()
}
