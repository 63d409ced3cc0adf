// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

var testSite = &SiteConfig{
	SiteName:        "Jane Doe",
	SiteURL:         "https://janedoe.dev",
	SiteDescription: "Software engineer and writer",
	DefaultImage:    "/uploads/originals/abc/avatar.jpg",
}

func TestBuildMeta_Homepage(t *testing.T) {
	meta := BuildMeta(nil, testSite)

	if meta.Title != "Jane Doe" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description != "Software engineer and writer" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Canonical != "https://janedoe.dev" {
		t.Errorf("Canonical = %q", meta.Canonical)
	}
	if meta.OGType != "website" {
		t.Errorf("OGType = %q, want website", meta.OGType)
	}
	if meta.OGImage != "https://janedoe.dev/uploads/originals/abc/avatar.jpg" {
		t.Errorf("OGImage = %q", meta.OGImage)
	}
}

func TestBuildMeta_Content(t *testing.T) {
	meta := BuildMeta(&ContentData{
		Title:     "Hello World",
		Summary:   "A first post",
		Path:      "/posts/hello-world",
		ImagePath: "/uploads/medium/def/cover.jpg",
	}, testSite)

	if meta.Title != "Hello World" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description != "A first post" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Canonical != "https://janedoe.dev/posts/hello-world" {
		t.Errorf("Canonical = %q", meta.Canonical)
	}
	if meta.OGType != "article" {
		t.Errorf("OGType = %q, want article", meta.OGType)
	}
	if meta.OGImage != "https://janedoe.dev/uploads/medium/def/cover.jpg" {
		t.Errorf("OGImage = %q", meta.OGImage)
	}
	if meta.OGURL != meta.Canonical {
		t.Error("OGURL should match canonical")
	}
}

func TestBuildMeta_DescriptionFromBody(t *testing.T) {
	longBody := "<p>" + strings.Repeat("word ", 100) + "</p>"
	meta := BuildMeta(&ContentData{
		Title: "Post",
		Body:  longBody,
		Path:  "/posts/post",
	}, testSite)

	if len(meta.Description) > 163 { // 160 + ellipsis
		t.Errorf("Description too long: %d chars", len(meta.Description))
	}
	if strings.Contains(meta.Description, "<p>") {
		t.Error("Description should have HTML stripped")
	}
	if !strings.HasSuffix(meta.Description, "...") {
		t.Errorf("truncated description should end with ellipsis: %q", meta.Description)
	}
}

func TestBuildArticleSchema(t *testing.T) {
	published := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	modified := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	raw := BuildArticleSchema(&ContentData{
		Title:       "Hello World",
		Summary:     "A first post",
		Path:        "/posts/hello-world",
		PublishedAt: &published,
		AuthorName:  "Jane Doe",
	}, testSite, modified)

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	if schema["@type"] != "Article" {
		t.Errorf("@type = %v", schema["@type"])
	}
	if schema["headline"] != "Hello World" {
		t.Errorf("headline = %v", schema["headline"])
	}
	if schema["datePublished"] != "2026-02-01T09:00:00Z" {
		t.Errorf("datePublished = %v", schema["datePublished"])
	}
	if schema["dateModified"] != "2026-02-10T09:00:00Z" {
		t.Errorf("dateModified = %v", schema["dateModified"])
	}
	author, ok := schema["author"].(map[string]any)
	if !ok || author["name"] != "Jane Doe" {
		t.Errorf("author = %v", schema["author"])
	}

	if got := BuildArticleSchema(nil, testSite, time.Time{}); got != nil {
		t.Error("nil content should produce nil schema")
	}
}

func TestBuildPersonSchema(t *testing.T) {
	raw := BuildPersonSchema(&ProfileData{
		Name:        "Jane Doe",
		Title:       "Software Engineer",
		PhotoPath:   "/uploads/originals/abc/photo.jpg",
		Email:       "jane@example.com",
		GithubURL:   "https://github.com/janedoe",
		LinkedinURL: "https://linkedin.com/in/janedoe",
	}, testSite)

	var schema PersonSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	if schema.Type != "Person" || schema.Name != "Jane Doe" {
		t.Errorf("schema = %+v", schema)
	}
	if schema.JobTitle != "Software Engineer" {
		t.Errorf("JobTitle = %q", schema.JobTitle)
	}
	if schema.Image != "https://janedoe.dev/uploads/originals/abc/photo.jpg" {
		t.Errorf("Image = %q", schema.Image)
	}
	if len(schema.SameAs) != 2 {
		t.Errorf("SameAs = %v, want github and linkedin", schema.SameAs)
	}

	if got := BuildPersonSchema(&ProfileData{}, testSite); got != nil {
		t.Error("profile without name should produce nil schema")
	}
}

func TestBuildWebSiteSchema(t *testing.T) {
	raw := BuildWebSiteSchema(testSite)

	var schema WebSiteSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if schema.Type != "WebSite" || schema.URL != "https://janedoe.dev" {
		t.Errorf("schema = %+v", schema)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>hello <b>world</b></p>", "hello world"},
		{"no tags", "no tags"},
		{"<div>a</div><div>b</div>", "a b"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"", ""},
		{"https://cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"/uploads/x.jpg", "https://janedoe.dev/uploads/x.jpg"},
		{"uploads/x.jpg", "https://janedoe.dev/uploads/x.jpg"},
	}

	for _, tt := range tests {
		if got := makeAbsoluteURL(tt.url, "https://janedoe.dev"); got != tt.want {
			t.Errorf("makeAbsoluteURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
