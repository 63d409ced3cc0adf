// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/seo"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// PublicProjectResponse merges a project row with one language's field set.
type PublicProjectResponse struct {
	ID                  int64    `json:"id"`
	Slug                string   `json:"slug"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailed_description,omitempty"`
	RepoURL             string   `json:"repo_url,omitempty"`
	DemoURL             string   `json:"demo_url,omitempty"`
	ImagePath           string   `json:"image_path,omitempty"`
	Featured            bool     `json:"featured"`
	Language            string   `json:"language"`
	SEO                 *SEOData `json:"seo,omitempty"`
}

// PublicListProjects returns all projects in display order, each in the
// negotiated language with default-language fallback.
func (h *Handler) PublicListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguageCode(r)

	projects, err := h.queries.ListProjects(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve projects")
		return
	}

	out := make([]PublicProjectResponse, 0, len(projects))
	for _, p := range projects {
		tr, usedLang, err := h.projectTranslation(ctx, p.ID, lang)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve projects")
			return
		}
		resp := projectToPublic(p, tr, usedLang)
		resp.DetailedDescription = "" // list view stays light
		out = append(out, resp)
	}

	WriteSuccess(w, out, nil)
}

// PublicGetProject returns one project by slug.
func (h *Handler) PublicGetProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := ParseSlugParam(r)
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Project not found")
		return
	}
	project, err := h.queries.GetProjectBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
			return
		}
		WriteInternalError(w, "Failed to retrieve project")
		return
	}

	lang := middleware.GetLanguageCode(r)
	tr, usedLang, err := h.projectTranslation(ctx, project.ID, lang)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve project")
		return
	}

	resp := projectToPublic(project, tr, usedLang)
	resp.SEO = h.articleSEO(ctx, &seo.ContentData{
		Title:      tr.Title,
		Summary:    tr.Description,
		Body:       tr.DetailedDescription,
		Path:       "/projects/" + project.Slug,
		ImagePath:  project.ImagePath,
		AuthorName: h.authorName(ctx, usedLang),
	}, project.UpdatedAt)
	WriteSuccess(w, resp, nil)
}

func projectToPublic(p model.Project, tr model.ProjectTranslation, lang string) PublicProjectResponse {
	return PublicProjectResponse{
		ID:                  p.ID,
		Slug:                p.Slug,
		Title:               tr.Title,
		Description:         tr.Description,
		DetailedDescription: tr.DetailedDescription,
		RepoURL:             p.RepoURL,
		DemoURL:             p.DemoURL,
		ImagePath:           p.ImagePath,
		Featured:            p.Featured,
		Language:            lang,
	}
}

func (h *Handler) projectTranslation(ctx context.Context, projectID int64, lang string) (model.ProjectTranslation, string, error) {
	tr, err := h.queries.GetProjectTranslation(ctx, projectID, lang)
	if err == nil {
		return tr, lang, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.ProjectTranslation{}, "", err
	}

	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		return model.ProjectTranslation{}, "", err
	}
	if defaultLang == lang {
		return model.ProjectTranslation{}, lang, nil
	}
	tr, err = h.queries.GetProjectTranslation(ctx, projectID, defaultLang)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProjectTranslation{}, defaultLang, nil
		}
		return model.ProjectTranslation{}, "", err
	}
	return tr, defaultLang, nil
}

// AdminProjectResponse is a project with every language's field set.
type AdminProjectResponse struct {
	Project      model.Project              `json:"project"`
	Translations []model.ProjectTranslation `json:"translations"`
}

// AdminListProjects returns all projects with their field sets.
func (h *Handler) AdminListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.queries.ListProjects(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve projects")
		return
	}

	out := make([]AdminProjectResponse, 0, len(projects))
	for _, p := range projects {
		translations, err := h.queries.ListProjectTranslations(ctx, p.ID)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve projects")
			return
		}
		out = append(out, AdminProjectResponse{Project: p, Translations: translations})
	}

	WriteSuccess(w, out, nil)
}

// AdminGetProject returns one project with its field sets.
func (h *Handler) AdminGetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(r.Context(), id)
	})
	if !ok {
		return
	}

	translations, err := h.queries.ListProjectTranslations(r.Context(), project.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve project")
		return
	}
	WriteSuccess(w, AdminProjectResponse{Project: project, Translations: translations}, nil)
}

// SaveProjectRequest creates or updates a project. Language selects which
// field set the translatable fields land in; empty means the site default.
type SaveProjectRequest struct {
	Slug      string `json:"slug"`
	RepoURL   string `json:"repo_url"`
	DemoURL   string `json:"demo_url"`
	ImagePath string `json:"image_path"`
	Featured  bool   `json:"featured"`
	Position  int    `json:"position"`

	Language            string `json:"language"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description"`
}

func (h *Handler) validateProjectRequest(req *SaveProjectRequest) map[string]string {
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may contain lowercase letters, digits and hyphens"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// AdminCreateProject creates a project and its first field set.
func (h *Handler) AdminCreateProject(w http.ResponseWriter, r *http.Request) {
	var req SaveProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := h.validateProjectRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	if _, err := h.queries.GetProjectBySlug(ctx, req.Slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to create project")
		return
	}

	now := time.Now()
	project, err := h.queries.CreateProject(ctx, store.CreateProjectParams{
		Slug:      req.Slug,
		RepoURL:   req.RepoURL,
		DemoURL:   req.DemoURL,
		ImagePath: req.ImagePath,
		Featured:  req.Featured,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create project")
		return
	}

	if err := h.queries.UpsertProjectTranslation(ctx, store.UpsertProjectTranslationParams{
		ProjectID:           project.ID,
		LanguageCode:        lang,
		Title:               req.Title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
	}); err != nil {
		WriteInternalError(w, "Failed to create project")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeProject, project.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Project created: "+project.Slug,
		middleware.GetUserIDPtr(r), map[string]any{"project_id": project.ID, "language": lang})

	WriteCreated(w, project)
}

// AdminUpdateProject updates a project and one language's field set.
func (h *Handler) AdminUpdateProject(w http.ResponseWriter, r *http.Request) {
	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(r.Context(), id)
	})
	if !ok {
		return
	}

	var req SaveProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := h.validateProjectRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	if req.Slug != project.Slug {
		if _, err := h.queries.GetProjectBySlug(ctx, req.Slug); err == nil {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to update project")
			return
		}
	}

	if err := h.queries.UpdateProject(ctx, store.UpdateProjectParams{
		ID:        project.ID,
		Slug:      req.Slug,
		RepoURL:   req.RepoURL,
		DemoURL:   req.DemoURL,
		ImagePath: req.ImagePath,
		Featured:  req.Featured,
		Position:  req.Position,
		UpdatedAt: time.Now(),
	}); err != nil {
		WriteInternalError(w, "Failed to update project")
		return
	}

	if err := h.queries.UpsertProjectTranslation(ctx, store.UpsertProjectTranslationParams{
		ProjectID:           project.ID,
		LanguageCode:        lang,
		Title:               req.Title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
	}); err != nil {
		WriteInternalError(w, "Failed to update project")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeProject, project.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Project updated: "+req.Slug,
		middleware.GetUserIDPtr(r), map[string]any{"project_id": project.ID, "language": lang})

	updated, err := h.queries.GetProject(ctx, project.ID)
	if err != nil {
		WriteInternalError(w, "Failed to update project")
		return
	}
	WriteSuccess(w, updated, nil)
}

// AdminDeleteProject removes a project, its field sets and its
// translation records.
func (h *Handler) AdminDeleteProject(w http.ResponseWriter, r *http.Request) {
	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(r.Context(), id)
	})
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.queries.DeleteProject(ctx, project.ID); err != nil {
		WriteInternalError(w, "Failed to delete project")
		return
	}
	if err := h.queries.DeleteTranslationRecordsForEntity(ctx, model.EntityTypeProject, project.ID); err != nil {
		h.logger.Error("delete translation records", "error", err, "project_id", project.ID)
	}

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Project deleted: "+project.Slug,
		middleware.GetUserIDPtr(r), map[string]any{"project_id": project.ID})

	h.invalidateSitemapCache(ctx)
	WriteNoContent(w)
}

// writeLanguageError maps a resolveSaveLanguage failure to a response.
func writeLanguageError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownLanguage) {
		WriteValidationError(w, map[string]string{"language": "Unknown or inactive language"})
		return
	}
	WriteInternalError(w, "Failed to resolve language")
}
