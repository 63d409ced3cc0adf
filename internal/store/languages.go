// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const languageColumns = "id, code, name, native_name, is_active, direction, position, created_at, updated_at"

func scanLanguage(row interface{ Scan(...any) error }) (model.Language, error) {
	var l model.Language
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsActive,
		&l.Direction, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// ListLanguages returns all languages ordered by position.
func (q *Queries) ListLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+languageColumns+" FROM languages ORDER BY position, code")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var langs []model.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// ListActiveLanguages returns active languages ordered by position.
func (q *Queries) ListActiveLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+languageColumns+" FROM languages WHERE is_active = 1 ORDER BY position, code")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var langs []model.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// GetLanguageByCode fetches a language by its ISO code.
func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (model.Language, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+languageColumns+" FROM languages WHERE code = ?", code)
	return scanLanguage(row)
}

// CreateLanguageParams holds parameters for CreateLanguage.
type CreateLanguageParams struct {
	Code       string
	Name       string
	NativeName string
	IsActive   bool
	Direction  string
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateLanguage inserts a new language and returns it.
func (q *Queries) CreateLanguage(ctx context.Context, arg CreateLanguageParams) (model.Language, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO languages (code, name, native_name, is_active, direction, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Code, arg.Name, arg.NativeName, arg.IsActive, arg.Direction,
		arg.Position, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Language{}, err
	}
	return q.GetLanguageByCode(ctx, arg.Code)
}

// UpdateLanguageParams holds parameters for UpdateLanguage.
type UpdateLanguageParams struct {
	ID         int64
	Name       string
	NativeName string
	IsActive   bool
	Direction  string
	Position   int
	UpdatedAt  time.Time
}

// UpdateLanguage updates a language's mutable fields.
func (q *Queries) UpdateLanguage(ctx context.Context, arg UpdateLanguageParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE languages SET name = ?, native_name = ?, is_active = ?, direction = ?,
		 position = ?, updated_at = ? WHERE id = ?`,
		arg.Name, arg.NativeName, arg.IsActive, arg.Direction,
		arg.Position, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteLanguage removes a language.
func (q *Queries) DeleteLanguage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM languages WHERE id = ?", id)
	return err
}
