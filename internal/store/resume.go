// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// --- Experiences ---

const experienceColumns = "id, start_date, end_date, current, position, created_at, updated_at"

func scanExperience(row interface{ Scan(...any) error }) (model.Experience, error) {
	var e model.Experience
	err := row.Scan(&e.ID, &e.StartDate, &e.EndDate, &e.Current, &e.Position,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListExperiences returns all experiences, newest first.
func (q *Queries) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+experienceColumns+" FROM experiences ORDER BY position, start_date DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetExperience fetches an experience by primary key.
func (q *Queries) GetExperience(ctx context.Context, id int64) (model.Experience, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+experienceColumns+" FROM experiences WHERE id = ?", id)
	return scanExperience(row)
}

// CreateExperienceParams holds parameters for CreateExperience.
type CreateExperienceParams struct {
	StartDate time.Time
	EndDate   sql.NullTime
	Current   bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateExperience inserts a new experience entry and returns it.
func (q *Queries) CreateExperience(ctx context.Context, arg CreateExperienceParams) (model.Experience, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO experiences (start_date, end_date, current, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.StartDate, arg.EndDate, arg.Current, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Experience{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Experience{}, err
	}
	return q.GetExperience(ctx, id)
}

// UpdateExperienceParams holds parameters for UpdateExperience.
type UpdateExperienceParams struct {
	ID        int64
	StartDate time.Time
	EndDate   sql.NullTime
	Current   bool
	Position  int
	UpdatedAt time.Time
}

// UpdateExperience updates an experience's language-independent fields.
func (q *Queries) UpdateExperience(ctx context.Context, arg UpdateExperienceParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE experiences SET start_date = ?, end_date = ?, current = ?,
		 position = ?, updated_at = ? WHERE id = ?`,
		arg.StartDate, arg.EndDate, arg.Current, arg.Position, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteExperience removes an experience entry; translations cascade.
func (q *Queries) DeleteExperience(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM experiences WHERE id = ?", id)
	return err
}

// GetExperienceTranslation fetches one language's field set for an experience.
func (q *Queries) GetExperienceTranslation(ctx context.Context, experienceID int64, lang string) (model.ExperienceTranslation, error) {
	var t model.ExperienceTranslation
	err := q.db.QueryRowContext(ctx,
		`SELECT id, experience_id, language_code, company, role, description
		 FROM experience_translations WHERE experience_id = ? AND language_code = ?`,
		experienceID, lang).Scan(
		&t.ID, &t.ExperienceID, &t.LanguageCode, &t.Company, &t.Role, &t.Description)
	return t, err
}

// ListExperienceTranslations returns all language field sets for an experience.
func (q *Queries) ListExperienceTranslations(ctx context.Context, experienceID int64) ([]model.ExperienceTranslation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, experience_id, language_code, company, role, description
		 FROM experience_translations WHERE experience_id = ? ORDER BY language_code`,
		experienceID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ExperienceTranslation
	for rows.Next() {
		var t model.ExperienceTranslation
		if err := rows.Scan(&t.ID, &t.ExperienceID, &t.LanguageCode, &t.Company,
			&t.Role, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertExperienceTranslationParams holds one language's full field set.
type UpsertExperienceTranslationParams struct {
	ExperienceID int64
	LanguageCode string
	Company      string
	Role         string
	Description  string
}

// UpsertExperienceTranslation inserts or fully replaces one language's field set.
func (q *Queries) UpsertExperienceTranslation(ctx context.Context, arg UpsertExperienceTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO experience_translations (experience_id, language_code, company, role, description)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(experience_id, language_code) DO UPDATE SET
		 company = excluded.company, role = excluded.role, description = excluded.description`,
		arg.ExperienceID, arg.LanguageCode, arg.Company, arg.Role, arg.Description)
	return err
}

// --- Educations ---

const educationColumns = "id, start_date, end_date, position, created_at, updated_at"

func scanEducation(row interface{ Scan(...any) error }) (model.Education, error) {
	var e model.Education
	err := row.Scan(&e.ID, &e.StartDate, &e.EndDate, &e.Position, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListEducations returns all education entries, newest first.
func (q *Queries) ListEducations(ctx context.Context) ([]model.Education, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+educationColumns+" FROM educations ORDER BY position, start_date DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Education
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEducation fetches an education entry by primary key.
func (q *Queries) GetEducation(ctx context.Context, id int64) (model.Education, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+educationColumns+" FROM educations WHERE id = ?", id)
	return scanEducation(row)
}

// CreateEducationParams holds parameters for CreateEducation.
type CreateEducationParams struct {
	StartDate time.Time
	EndDate   sql.NullTime
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateEducation inserts a new education entry and returns it.
func (q *Queries) CreateEducation(ctx context.Context, arg CreateEducationParams) (model.Education, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO educations (start_date, end_date, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.StartDate, arg.EndDate, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Education{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Education{}, err
	}
	return q.GetEducation(ctx, id)
}

// UpdateEducationParams holds parameters for UpdateEducation.
type UpdateEducationParams struct {
	ID        int64
	StartDate time.Time
	EndDate   sql.NullTime
	Position  int
	UpdatedAt time.Time
}

// UpdateEducation updates an education entry's language-independent fields.
func (q *Queries) UpdateEducation(ctx context.Context, arg UpdateEducationParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE educations SET start_date = ?, end_date = ?, position = ?,
		 updated_at = ? WHERE id = ?`,
		arg.StartDate, arg.EndDate, arg.Position, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteEducation removes an education entry; translations cascade.
func (q *Queries) DeleteEducation(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM educations WHERE id = ?", id)
	return err
}

// GetEducationTranslation fetches one language's field set for an education entry.
func (q *Queries) GetEducationTranslation(ctx context.Context, educationID int64, lang string) (model.EducationTranslation, error) {
	var t model.EducationTranslation
	err := q.db.QueryRowContext(ctx,
		`SELECT id, education_id, language_code, institution, degree, field_of_study, description
		 FROM education_translations WHERE education_id = ? AND language_code = ?`,
		educationID, lang).Scan(
		&t.ID, &t.EducationID, &t.LanguageCode, &t.Institution, &t.Degree,
		&t.FieldOfStudy, &t.Description)
	return t, err
}

// ListEducationTranslations returns all language field sets for an education entry.
func (q *Queries) ListEducationTranslations(ctx context.Context, educationID int64) ([]model.EducationTranslation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, education_id, language_code, institution, degree, field_of_study, description
		 FROM education_translations WHERE education_id = ? ORDER BY language_code`,
		educationID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.EducationTranslation
	for rows.Next() {
		var t model.EducationTranslation
		if err := rows.Scan(&t.ID, &t.EducationID, &t.LanguageCode, &t.Institution,
			&t.Degree, &t.FieldOfStudy, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertEducationTranslationParams holds one language's full field set.
type UpsertEducationTranslationParams struct {
	EducationID  int64
	LanguageCode string
	Institution  string
	Degree       string
	FieldOfStudy string
	Description  string
}

// UpsertEducationTranslation inserts or fully replaces one language's field set.
func (q *Queries) UpsertEducationTranslation(ctx context.Context, arg UpsertEducationTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO education_translations (education_id, language_code, institution, degree, field_of_study, description)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(education_id, language_code) DO UPDATE SET
		 institution = excluded.institution, degree = excluded.degree,
		 field_of_study = excluded.field_of_study, description = excluded.description`,
		arg.EducationID, arg.LanguageCode, arg.Institution, arg.Degree,
		arg.FieldOfStudy, arg.Description)
	return err
}

// --- Skills ---

// ListSkills returns all skills ordered by category and position.
func (q *Queries) ListSkills(ctx context.Context) ([]model.Skill, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, name, category, proficiency, position, created_at FROM skills ORDER BY category, position, name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Skill
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Proficiency,
			&s.Position, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateSkillParams holds parameters for CreateSkill.
type CreateSkillParams struct {
	Name        string
	Category    string
	Proficiency int
	Position    int
	CreatedAt   time.Time
}

// CreateSkill inserts a new skill.
func (q *Queries) CreateSkill(ctx context.Context, arg CreateSkillParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO skills (name, category, proficiency, position, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Category, arg.Proficiency, arg.Position, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateSkillParams holds parameters for UpdateSkill.
type UpdateSkillParams struct {
	ID          int64
	Name        string
	Category    string
	Proficiency int
	Position    int
}

// UpdateSkill updates a skill.
func (q *Queries) UpdateSkill(ctx context.Context, arg UpdateSkillParams) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE skills SET name = ?, category = ?, proficiency = ?, position = ? WHERE id = ?",
		arg.Name, arg.Category, arg.Proficiency, arg.Position, arg.ID)
	return err
}

// DeleteSkill removes a skill.
func (q *Queries) DeleteSkill(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM skills WHERE id = ?", id)
	return err
}
