// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Entity types that carry per-language field sets. TranslationRecord rows
// reference entities by (entity_type, entity_id) so one table serves all
// translatable content.
const (
	EntityTypeProfile    = "profile"
	EntityTypeProject    = "project"
	EntityTypePost       = "post"
	EntityTypeExperience = "experience"
	EntityTypeEducation  = "education"
)

// Translation record statuses
const (
	TranslationStatusPending = "pending"
	TranslationStatusSuccess = "success"
	TranslationStatusFailed  = "failed"
)

// TranslationErrorMaxLen bounds the stored error message length.
const TranslationErrorMaxLen = 1000

// TranslationRecord tracks one entity's translation state into one target
// language. Rows are unique per (entity_type, entity_id, language_code) and
// are updated in place on every attempt.
//
// AutoGenerated=false marks a translation a human owns; the pipeline must
// never overwrite such a language automatically.
type TranslationRecord struct {
	ID             int64     `json:"id"`
	EntityType     string    `json:"entity_type"`
	EntityID       int64     `json:"entity_id"`
	LanguageCode   string    `json:"language_code"`
	SourceLanguage string    `json:"source_language"`
	Provider       string    `json:"provider"`
	DurationMs     int64     `json:"duration_ms"`
	AutoGenerated  bool      `json:"auto_generated"`
	Status         string    `json:"status"`
	ErrorMessage   string    `json:"error_message"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsManual returns true if a human owns this language's translation.
func (r *TranslationRecord) IsManual() bool {
	return !r.AutoGenerated
}

// TruncatedError returns the error message clipped for display in list views.
func (r *TranslationRecord) TruncatedError(max int) string {
	if max <= 0 || len(r.ErrorMessage) <= max {
		return r.ErrorMessage
	}
	return r.ErrorMessage[:max] + "…"
}
