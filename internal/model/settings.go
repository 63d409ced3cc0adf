// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Translation providers
const (
	ProviderLibreTranslate = "libretranslate"
	ProviderOpenAI         = "openai"
)

// DefaultTranslationTimeout is the default provider timeout in seconds.
const DefaultTranslationTimeout = 10

// SiteSettings is the singleton site configuration row (id is always 1).
// It is the single source of truth for whether and how automatic
// translation runs.
type SiteSettings struct {
	ID                   int64     `json:"id"`
	SiteName             string    `json:"site_name"`
	DefaultLanguage      string    `json:"default_language"`
	AutoTranslateEnabled bool      `json:"auto_translate_enabled"`
	TranslationProvider  string    `json:"translation_provider"`
	TranslationAPIURL    string    `json:"translation_api_url"`
	TranslationAPIKey    string    `json:"-"` // Never expose in JSON
	TranslationTimeout   int       `json:"translation_timeout"` // seconds
	UpdatedAt            time.Time `json:"updated_at"`
}
