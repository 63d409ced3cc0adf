// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/translate"
)

// AdminTranslationStatus returns the per-entity, per-language translation
// status for every entity of the given type. The admin UI renders this as
// the status column next to each row.
func (h *Handler) AdminTranslationStatus(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	if !translate.Registered(entityType) {
		WriteBadRequest(w, "Unknown entity type", nil)
		return
	}

	ctx := r.Context()
	ids, err := h.listEntityIDs(ctx, entityType)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve translation status")
		return
	}

	cfg, err := h.site.Get(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve translation status")
		return
	}
	languages, err := h.languages.GetActive(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve translation status")
		return
	}

	statuses, err := translate.StatusSummary(ctx, h.queries, cfg.DefaultLanguage, languages, entityType, ids)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve translation status")
		return
	}
	WriteSuccess(w, statuses, nil)
}

// AdminRetryTranslation re-runs machine translation for one entity
// synchronously, so the admin sees the outcome in the response instead of
// polling. Failed records are cleared first: a failure drops
// auto_generated, which would otherwise make the pipeline skip exactly the
// languages the admin is retrying. Manual successes stay untouched.
func (h *Handler) AdminRetryTranslation(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	if !translate.Registered(entityType) {
		WriteBadRequest(w, "Unknown entity type", nil)
		return
	}
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid entity ID", nil)
		return
	}

	ctx := r.Context()
	cfg, err := h.site.Get(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to run translation")
		return
	}
	if !cfg.AutoTranslateEnabled {
		WriteConflict(w, "Automatic translation is disabled")
		return
	}

	if err := h.queries.ClearFailedTranslationRecords(ctx, entityType, id); err != nil {
		WriteInternalError(w, "Failed to run translation")
		return
	}

	job := translate.Job{
		EntityType:     entityType,
		EntityID:       id,
		SourceLanguage: cfg.DefaultLanguage,
	}
	if err := h.translator.Run(ctx, job); err != nil {
		WriteInternalError(w, "Translation run failed")
		return
	}
	h.invalidateContentCache(ctx, entityType)
	WriteNoContent(w)
}

// AdminClearTranslationRecord drops one language's translation record,
// returning that field set to machine management. The next
// default-language save will overwrite it.
func (h *Handler) AdminClearTranslationRecord(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	if !translate.Registered(entityType) {
		WriteBadRequest(w, "Unknown entity type", nil)
		return
	}
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid entity ID", nil)
		return
	}
	lang := chi.URLParam(r, "lang")
	if lang == "" {
		WriteBadRequest(w, "Language is required", nil)
		return
	}

	if err := h.queries.ClearTranslationRecord(r.Context(), entityType, id, lang); err != nil {
		WriteInternalError(w, "Failed to clear translation record")
		return
	}
	WriteNoContent(w)
}

// listEntityIDs returns the IDs of every entity of one translatable type.
// Content volume is personal-site scale, so unpaginated reads are fine.
func (h *Handler) listEntityIDs(ctx context.Context, entityType string) ([]int64, error) {
	switch entityType {
	case model.EntityTypeProfile:
		profile, err := h.queries.GetProfile(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []int64{profile.ID}, nil
	case model.EntityTypeProject:
		projects, err := h.queries.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		return ids, nil
	case model.EntityTypePost:
		total, err := h.queries.CountPosts(ctx)
		if err != nil {
			return nil, err
		}
		posts, err := h.queries.ListPosts(ctx, store.ListPostsParams{Limit: total, Offset: 0})
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(posts))
		for _, p := range posts {
			ids = append(ids, p.ID)
		}
		return ids, nil
	case model.EntityTypeExperience:
		experiences, err := h.queries.ListExperiences(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(experiences))
		for _, e := range experiences {
			ids = append(ids, e.ID)
		}
		return ids, nil
	case model.EntityTypeEducation:
		educations, err := h.queries.ListEducations(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(educations))
		for _, e := range educations {
			ids = append(ids, e.ID)
		}
		return ids, nil
	default:
		return nil, errors.New("unknown entity type " + entityType)
	}
}
