// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const projectColumns = "id, slug, repo_url, demo_url, image_path, featured, position, created_at, updated_at"

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Slug, &p.RepoURL, &p.DemoURL, &p.ImagePath,
		&p.Featured, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListProjects returns all projects ordered by position.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProject fetches a project by primary key.
func (q *Queries) GetProject(ctx context.Context, id int64) (model.Project, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	return scanProject(row)
}

// GetProjectBySlug fetches a project by slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE slug = ?", slug)
	return scanProject(row)
}

// CreateProjectParams holds parameters for CreateProject.
type CreateProjectParams struct {
	Slug      string
	RepoURL   string
	DemoURL   string
	ImagePath string
	Featured  bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateProject inserts a new project and returns it.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO projects (slug, repo_url, demo_url, image_path, featured, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Slug, arg.RepoURL, arg.DemoURL, arg.ImagePath, arg.Featured,
		arg.Position, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProject(ctx, id)
}

// UpdateProjectParams holds parameters for UpdateProject.
type UpdateProjectParams struct {
	ID        int64
	Slug      string
	RepoURL   string
	DemoURL   string
	ImagePath string
	Featured  bool
	Position  int
	UpdatedAt time.Time
}

// UpdateProject updates a project's language-independent fields.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE projects SET slug = ?, repo_url = ?, demo_url = ?, image_path = ?,
		 featured = ?, position = ?, updated_at = ? WHERE id = ?`,
		arg.Slug, arg.RepoURL, arg.DemoURL, arg.ImagePath, arg.Featured,
		arg.Position, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteProject removes a project; translations cascade.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

// GetProjectTranslation fetches one language's field set for a project.
func (q *Queries) GetProjectTranslation(ctx context.Context, projectID int64, lang string) (model.ProjectTranslation, error) {
	var t model.ProjectTranslation
	err := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, language_code, title, description, detailed_description
		 FROM project_translations WHERE project_id = ? AND language_code = ?`,
		projectID, lang).Scan(
		&t.ID, &t.ProjectID, &t.LanguageCode, &t.Title, &t.Description, &t.DetailedDescription)
	return t, err
}

// ListProjectTranslations returns every language's field set for a project.
func (q *Queries) ListProjectTranslations(ctx context.Context, projectID int64) ([]model.ProjectTranslation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, project_id, language_code, title, description, detailed_description
		 FROM project_translations WHERE project_id = ? ORDER BY language_code`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ProjectTranslation
	for rows.Next() {
		var t model.ProjectTranslation
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.LanguageCode, &t.Title,
			&t.Description, &t.DetailedDescription); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertProjectTranslationParams holds one language's full field set.
type UpsertProjectTranslationParams struct {
	ProjectID           int64
	LanguageCode        string
	Title               string
	Description         string
	DetailedDescription string
}

// UpsertProjectTranslation inserts or fully replaces one language's field set.
func (q *Queries) UpsertProjectTranslation(ctx context.Context, arg UpsertProjectTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO project_translations (project_id, language_code, title, description, detailed_description)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(project_id, language_code) DO UPDATE SET
		 title = excluded.title, description = excluded.description,
		 detailed_description = excluded.detailed_description`,
		arg.ProjectID, arg.LanguageCode, arg.Title, arg.Description, arg.DetailedDescription)
	return err
}
