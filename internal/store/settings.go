// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const settingsColumns = `id, site_name, default_language, auto_translate_enabled,
	translation_provider, translation_api_url, translation_api_key,
	translation_timeout, updated_at`

// GetSettings returns the singleton site settings row.
// Returns sql.ErrNoRows if the row has not been created yet.
func (q *Queries) GetSettings(ctx context.Context) (model.SiteSettings, error) {
	var s model.SiteSettings
	err := q.db.QueryRowContext(ctx,
		"SELECT "+settingsColumns+" FROM site_settings WHERE id = 1").Scan(
		&s.ID, &s.SiteName, &s.DefaultLanguage, &s.AutoTranslateEnabled,
		&s.TranslationProvider, &s.TranslationAPIURL, &s.TranslationAPIKey,
		&s.TranslationTimeout, &s.UpdatedAt)
	return s, err
}

// InsertDefaultSettingsParams holds provider defaults for the settings row.
type InsertDefaultSettingsParams struct {
	SiteName            string
	DefaultLanguage     string
	TranslationProvider string
	TranslationTimeout  int
	UpdatedAt           time.Time
}

// InsertDefaultSettings creates the settings row if it does not exist yet.
// The id=1 primary key check plus INSERT OR IGNORE makes this idempotent and
// guarantees a second row can never appear.
func (q *Queries) InsertDefaultSettings(ctx context.Context, arg InsertDefaultSettingsParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO site_settings
		 (id, site_name, default_language, auto_translate_enabled, translation_provider,
		  translation_api_url, translation_api_key, translation_timeout, updated_at)
		 VALUES (1, ?, ?, 0, ?, '', '', ?, ?)`,
		arg.SiteName, arg.DefaultLanguage, arg.TranslationProvider,
		arg.TranslationTimeout, arg.UpdatedAt)
	return err
}

// UpdateSettingsParams holds parameters for UpdateSettings.
type UpdateSettingsParams struct {
	SiteName             string
	DefaultLanguage      string
	AutoTranslateEnabled bool
	TranslationProvider  string
	TranslationAPIURL    string
	TranslationAPIKey    string
	TranslationTimeout   int
	UpdatedAt            time.Time
}

// UpdateSettings replaces the mutable settings fields on the singleton row.
func (q *Queries) UpdateSettings(ctx context.Context, arg UpdateSettingsParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE site_settings SET site_name = ?, default_language = ?,
		 auto_translate_enabled = ?, translation_provider = ?, translation_api_url = ?,
		 translation_api_key = ?, translation_timeout = ?, updated_at = ?
		 WHERE id = 1`,
		arg.SiteName, arg.DefaultLanguage, arg.AutoTranslateEnabled,
		arg.TranslationProvider, arg.TranslationAPIURL, arg.TranslationAPIKey,
		arg.TranslationTimeout, arg.UpdatedAt)
	return err
}
