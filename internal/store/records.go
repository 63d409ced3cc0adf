// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const translationRecordColumns = "id, entity_type, entity_id, language_code, source_language, " +
	"provider, duration_ms, auto_generated, status, error_message, created_at, updated_at"

func scanTranslationRecord(row interface{ Scan(...any) error }) (model.TranslationRecord, error) {
	var r model.TranslationRecord
	err := row.Scan(&r.ID, &r.EntityType, &r.EntityID, &r.LanguageCode, &r.SourceLanguage,
		&r.Provider, &r.DurationMs, &r.AutoGenerated, &r.Status, &r.ErrorMessage,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// GetTranslationRecord fetches the record for one entity/language pair.
// Returns sql.ErrNoRows when the language has never been attempted.
func (q *Queries) GetTranslationRecord(ctx context.Context, entityType string, entityID int64, lang string) (model.TranslationRecord, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+translationRecordColumns+
			" FROM translation_records WHERE entity_type = ? AND entity_id = ? AND language_code = ?",
		entityType, entityID, lang)
	return scanTranslationRecord(row)
}

// ListTranslationRecordsForEntity returns all per-language records for one entity.
func (q *Queries) ListTranslationRecordsForEntity(ctx context.Context, entityType string, entityID int64) ([]model.TranslationRecord, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+translationRecordColumns+
			" FROM translation_records WHERE entity_type = ? AND entity_id = ? ORDER BY language_code",
		entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.TranslationRecord
	for rows.Next() {
		r, err := scanTranslationRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTranslationRecordsForEntities returns records for a batch of entities of
// one type, for building list-view status columns in a single query.
func (q *Queries) ListTranslationRecordsForEntities(ctx context.Context, entityType string, entityIDs []int64) ([]model.TranslationRecord, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(entityIDs)+1)
	args = append(args, entityType)
	for _, id := range entityIDs {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(entityIDs)), ",")
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+translationRecordColumns+
			" FROM translation_records WHERE entity_type = ? AND entity_id IN ("+placeholders+")"+
			" ORDER BY entity_id, language_code",
		args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.TranslationRecord
	for rows.Next() {
		r, err := scanTranslationRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertTranslationRecordSuccessParams records a completed automatic
// translation of one entity into one language.
type UpsertTranslationRecordSuccessParams struct {
	EntityType     string
	EntityID       int64
	LanguageCode   string
	SourceLanguage string
	Provider       string
	DurationMs     int64
	Now            time.Time
}

// UpsertTranslationRecordSuccess inserts or updates the record after all of a
// language's fields translated. The row becomes auto_generated and any prior
// error is cleared.
func (q *Queries) UpsertTranslationRecordSuccess(ctx context.Context, arg UpsertTranslationRecordSuccessParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO translation_records
		 (entity_type, entity_id, language_code, source_language, provider,
		  duration_ms, auto_generated, status, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?, '', ?, ?)
		 ON CONFLICT(entity_type, entity_id, language_code) DO UPDATE SET
		 source_language = excluded.source_language,
		 provider = excluded.provider,
		 duration_ms = excluded.duration_ms,
		 auto_generated = 1,
		 status = excluded.status,
		 error_message = '',
		 updated_at = excluded.updated_at`,
		arg.EntityType, arg.EntityID, arg.LanguageCode, arg.SourceLanguage, arg.Provider,
		arg.DurationMs, model.TranslationStatusSuccess, arg.Now, arg.Now)
	return err
}

// UpsertTranslationRecordFailureParams records a failed attempt at one
// entity/language pair.
type UpsertTranslationRecordFailureParams struct {
	EntityType     string
	EntityID       int64
	LanguageCode   string
	SourceLanguage string
	ErrorMessage   string
	Now            time.Time
}

// UpsertTranslationRecordFailure inserts or updates the record after a
// language's translation aborted. Provider and duration reset, the flag drops
// to manual so the language is not silently retried, and the error message is
// clipped to the column budget.
func (q *Queries) UpsertTranslationRecordFailure(ctx context.Context, arg UpsertTranslationRecordFailureParams) error {
	msg := arg.ErrorMessage
	if len(msg) > model.TranslationErrorMaxLen {
		msg = msg[:model.TranslationErrorMaxLen]
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO translation_records
		 (entity_type, entity_id, language_code, source_language, provider,
		  duration_ms, auto_generated, status, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, '', 0, 0, ?, ?, ?, ?)
		 ON CONFLICT(entity_type, entity_id, language_code) DO UPDATE SET
		 source_language = excluded.source_language,
		 provider = '',
		 duration_ms = 0,
		 auto_generated = 0,
		 status = excluded.status,
		 error_message = excluded.error_message,
		 updated_at = excluded.updated_at`,
		arg.EntityType, arg.EntityID, arg.LanguageCode, arg.SourceLanguage,
		model.TranslationStatusFailed, msg, arg.Now, arg.Now)
	return err
}

// SetTranslationRecordManual marks one entity/language pair as human-edited.
// The pipeline skips manual languages, so this pins an admin's wording.
func (q *Queries) SetTranslationRecordManual(ctx context.Context, entityType string, entityID int64, lang string, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO translation_records
		 (entity_type, entity_id, language_code, source_language, provider,
		  duration_ms, auto_generated, status, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, '', '', 0, 0, ?, '', ?, ?)
		 ON CONFLICT(entity_type, entity_id, language_code) DO UPDATE SET
		 auto_generated = 0,
		 status = ?,
		 error_message = '',
		 updated_at = ?`,
		entityType, entityID, lang, model.TranslationStatusSuccess, now, now,
		model.TranslationStatusSuccess, now)
	return err
}

// ClearFailedTranslationRecords removes every failed record for an entity so
// those languages become eligible for translation again. Successful records,
// manual ones included, are left alone.
func (q *Queries) ClearFailedTranslationRecords(ctx context.Context, entityType string, entityID int64) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM translation_records WHERE entity_type = ? AND entity_id = ? AND status = ?",
		entityType, entityID, model.TranslationStatusFailed)
	return err
}

// ClearTranslationRecord removes one entity/language record so the next save
// re-translates that language automatically.
func (q *Queries) ClearTranslationRecord(ctx context.Context, entityType string, entityID int64, lang string) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM translation_records WHERE entity_type = ? AND entity_id = ? AND language_code = ?",
		entityType, entityID, lang)
	return err
}

// DeleteTranslationRecordsForEntity removes all per-language records for an
// entity, called when the entity itself is deleted.
func (q *Queries) DeleteTranslationRecordsForEntity(ctx context.Context, entityType string, entityID int64) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM translation_records WHERE entity_type = ? AND entity_id = ?",
		entityType, entityID)
	return err
}
