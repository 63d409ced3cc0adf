// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Project represents a portfolio project. Language-dependent fields live in
// ProjectTranslation.
type Project struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	RepoURL   string    `json:"repo_url"`
	DemoURL   string    `json:"demo_url"`
	ImagePath string    `json:"image_path"`
	Featured  bool      `json:"featured"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectTranslation is one language's field set for a project.
// Unique per (project_id, language_code).
type ProjectTranslation struct {
	ID                  int64  `json:"id"`
	ProjectID           int64  `json:"project_id"`
	LanguageCode        string `json:"language_code"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description"` // HTML
}
