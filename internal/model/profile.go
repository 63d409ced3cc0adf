// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Profile is the site owner's bio card. There is normally a single profile,
// but the schema does not enforce it. Language-dependent fields live in
// ProfileTranslation.
type Profile struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	GithubURL   string    `json:"github_url"`
	LinkedinURL string    `json:"linkedin_url"`
	PhotoPath   string    `json:"photo_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileTranslation is one language's field set for a profile.
// Unique per (profile_id, language_code).
type ProfileTranslation struct {
	ID           int64  `json:"id"`
	ProfileID    int64  `json:"profile_id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"` // HTML
	Location     string `json:"location"`
}
