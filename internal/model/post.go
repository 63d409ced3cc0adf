// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Post represents a blog post. Language-dependent fields live in
// PostTranslation.
type Post struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	Status      string       `json:"status"`
	AuthorID    int64        `json:"author_id"`
	Tags        string       `json:"tags"` // comma separated
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	ScheduledAt sql.NullTime `json:"scheduled_at,omitempty"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// TagsList splits the comma-separated tags string.
func (p *Post) TagsList() []string {
	if p.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range splitAndTrim(p.Tags, ",") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// PostTranslation is one language's field set for a blog post.
// Unique per (post_id, language_code).
type PostTranslation struct {
	ID           int64  `json:"id"`
	PostID       int64  `json:"post_id"`
	LanguageCode string `json:"language_code"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content"` // Markdown; rendered to HTML on the public API
}
