// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const profileColumns = "id, email, phone, website, github_url, linkedin_url, photo_path, created_at, updated_at"

func scanProfile(row interface{ Scan(...any) error }) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.Email, &p.Phone, &p.Website, &p.GithubURL,
		&p.LinkedinURL, &p.PhotoPath, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetProfile returns the first (and normally only) profile.
func (q *Queries) GetProfile(ctx context.Context) (model.Profile, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles ORDER BY id LIMIT 1")
	return scanProfile(row)
}

// GetProfileByID fetches a profile by primary key.
func (q *Queries) GetProfileByID(ctx context.Context, id int64) (model.Profile, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	return scanProfile(row)
}

// CreateProfileParams holds parameters for CreateProfile.
type CreateProfileParams struct {
	Email       string
	Phone       string
	Website     string
	GithubURL   string
	LinkedinURL string
	PhotoPath   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProfile inserts a new profile and returns it.
func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (model.Profile, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO profiles (email, phone, website, github_url, linkedin_url, photo_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Email, arg.Phone, arg.Website, arg.GithubURL, arg.LinkedinURL,
		arg.PhotoPath, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Profile{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Profile{}, err
	}
	return q.GetProfileByID(ctx, id)
}

// UpdateProfileParams holds parameters for UpdateProfile.
type UpdateProfileParams struct {
	ID          int64
	Email       string
	Phone       string
	Website     string
	GithubURL   string
	LinkedinURL string
	PhotoPath   string
	UpdatedAt   time.Time
}

// UpdateProfile updates a profile's language-independent fields.
func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE profiles SET email = ?, phone = ?, website = ?, github_url = ?,
		 linkedin_url = ?, photo_path = ?, updated_at = ? WHERE id = ?`,
		arg.Email, arg.Phone, arg.Website, arg.GithubURL, arg.LinkedinURL,
		arg.PhotoPath, arg.UpdatedAt, arg.ID)
	return err
}

// GetProfileTranslation fetches one language's field set for a profile.
func (q *Queries) GetProfileTranslation(ctx context.Context, profileID int64, lang string) (model.ProfileTranslation, error) {
	var t model.ProfileTranslation
	err := q.db.QueryRowContext(ctx,
		`SELECT id, profile_id, language_code, name, title, bio, location
		 FROM profile_translations WHERE profile_id = ? AND language_code = ?`,
		profileID, lang).Scan(
		&t.ID, &t.ProfileID, &t.LanguageCode, &t.Name, &t.Title, &t.Bio, &t.Location)
	return t, err
}

// ListProfileTranslations returns every language's field set for a profile.
func (q *Queries) ListProfileTranslations(ctx context.Context, profileID int64) ([]model.ProfileTranslation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, profile_id, language_code, name, title, bio, location
		 FROM profile_translations WHERE profile_id = ? ORDER BY language_code`,
		profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ProfileTranslation
	for rows.Next() {
		var t model.ProfileTranslation
		if err := rows.Scan(&t.ID, &t.ProfileID, &t.LanguageCode, &t.Name,
			&t.Title, &t.Bio, &t.Location); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertProfileTranslationParams holds one language's full field set.
type UpsertProfileTranslationParams struct {
	ProfileID    int64
	LanguageCode string
	Name         string
	Title        string
	Bio          string
	Location     string
}

// UpsertProfileTranslation inserts or fully replaces one language's field set
// in a single statement, backed by the (profile_id, language_code) unique index.
func (q *Queries) UpsertProfileTranslation(ctx context.Context, arg UpsertProfileTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO profile_translations (profile_id, language_code, name, title, bio, location)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(profile_id, language_code) DO UPDATE SET
		 name = excluded.name, title = excluded.title, bio = excluded.bio, location = excluded.location`,
		arg.ProfileID, arg.LanguageCode, arg.Name, arg.Title, arg.Bio, arg.Location)
	return err
}
