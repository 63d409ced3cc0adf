// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/translate"
)

func TestAdminTranslationStatus_UnknownEntityType(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/translations/widget/status", nil)
	rec := serve("/api/admin/translations/{entityType}/status", func(w http.ResponseWriter, r *http.Request) {
		env.h.AdminTranslationStatus(w, asUser(r, env.adminUser(t)))
	}, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminTranslationStatus_PendingAndManual(t *testing.T) {
	env := newTestEnv(t)
	env.activateLanguage(t, "es")

	project := createProject(t, env, SaveProjectRequest{
		Title:       "App",
		Description: "A thing.",
	})

	statusFor := func() []translate.EntityStatus {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/translations/project/status", nil)
		rec := serve("/api/admin/translations/{entityType}/status", func(w http.ResponseWriter, r *http.Request) {
			env.h.AdminTranslationStatus(w, asUser(r, env.adminUser(t)))
		}, r)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var statuses []translate.EntityStatus
		decodeData(t, rec, &statuses)
		return statuses
	}

	byLang := func(es translate.EntityStatus) map[string]translate.LanguageStatus {
		out := make(map[string]translate.LanguageStatus)
		for _, ls := range es.Languages {
			out[ls.Language] = ls
		}
		return out
	}

	statuses := statusFor()
	require.Len(t, statuses, 1)
	langs := byLang(statuses[0])
	assert.Equal(t, translate.StateSource, langs["en"].State)
	assert.Equal(t, translate.StatePending, langs["es"].State)

	// A manual Spanish save flips the badge to ready and marks it
	// human-owned.
	r := jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/admin/projects/%d", project.ID), SaveProjectRequest{
		Slug:        project.Slug,
		Language:    "es",
		Title:       "Aplicación",
		Description: "Una cosa.",
	})
	rec := serve("/api/admin/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		env.h.AdminUpdateProject(w, asUser(r, env.adminUser(t)))
	}, r)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	statuses = statusFor()
	require.Len(t, statuses, 1)
	langs = byLang(statuses[0])
	assert.Equal(t, translate.StateReady, langs["es"].State)
	assert.True(t, langs["es"].Manual)
}

func TestAdminRetryTranslation_DisabledConflicts(t *testing.T) {
	env := newTestEnv(t)
	project := createProject(t, env, SaveProjectRequest{
		Title:       "App",
		Description: "A thing.",
	})

	r := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/admin/translations/project/%d/retry", project.ID), nil)
	rec := serve("/api/admin/translations/{entityType}/{id}/retry", func(w http.ResponseWriter, r *http.Request) {
		env.h.AdminRetryTranslation(w, asUser(r, env.adminUser(t)))
	}, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminClearTranslationRecord(t *testing.T) {
	env := newTestEnv(t)
	env.activateLanguage(t, "es")
	ctx := context.Background()

	project := createProject(t, env, SaveProjectRequest{
		Title:       "App",
		Description: "A thing.",
	})
	require.NoError(t, env.queries.SetTranslationRecordManual(ctx,
		model.EntityTypeProject, project.ID, "es", project.CreatedAt))

	r := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/admin/translations/project/%d/es", project.ID), nil)
	rec := serve("/api/admin/translations/{entityType}/{id}/{lang}", func(w http.ResponseWriter, r *http.Request) {
		env.h.AdminClearTranslationRecord(w, asUser(r, env.adminUser(t)))
	}, r)
	require.Equal(t, http.StatusNoContent, rec.Code)

	records, err := env.queries.ListTranslationRecordsForEntity(ctx, model.EntityTypeProject, project.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// A failed language drops auto_generated, which normally shields it from the
// pipeline. The retry endpoint must release that shield, or retrying a
// failure silently does nothing.
func TestAdminRetryTranslation_RetriesFailedLanguage(t *testing.T) {
	env := newTestEnv(t)
	env.activateLanguage(t, "es")
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"translatedText": %q}`, r.PostFormValue("q")+" (es)")
	}))
	defer srv.Close()

	cfg, err := env.site.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, env.site.Update(ctx, store.UpdateSettingsParams{
		SiteName:             cfg.SiteName,
		DefaultLanguage:      cfg.DefaultLanguage,
		AutoTranslateEnabled: true,
		TranslationProvider:  model.ProviderLibreTranslate,
		TranslationAPIURL:    srv.URL,
		TranslationTimeout:   5,
		UpdatedAt:            time.Now(),
	}))

	project := createProject(t, env, SaveProjectRequest{
		Title:       "App",
		Description: "A thing.",
	})
	require.NoError(t, env.queries.UpsertTranslationRecordFailure(ctx, store.UpsertTranslationRecordFailureParams{
		EntityType:     model.EntityTypeProject,
		EntityID:       project.ID,
		LanguageCode:   "es",
		SourceLanguage: cfg.DefaultLanguage,
		ErrorMessage:   "provider unreachable",
		Now:            time.Now(),
	}))

	r := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/admin/translations/project/%d/retry", project.ID), nil)
	rec := serve("/api/admin/translations/{entityType}/{id}/retry", func(w http.ResponseWriter, r *http.Request) {
		env.h.AdminRetryTranslation(w, asUser(r, env.adminUser(t)))
	}, r)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	record, err := env.queries.GetTranslationRecord(ctx, model.EntityTypeProject, project.ID, "es")
	require.NoError(t, err)
	assert.Equal(t, model.TranslationStatusSuccess, record.Status)
	assert.True(t, record.AutoGenerated)

	translation, err := env.queries.GetProjectTranslation(ctx, project.ID, "es")
	require.NoError(t, err)
	assert.Equal(t, "App (es)", translation.Title)
}

// The reset only touches failed rows: a language an admin translated by hand
// keeps its wording through a retry.
func TestAdminRetryTranslation_KeepsManualTranslations(t *testing.T) {
	env := newTestEnv(t)
	env.activateLanguage(t, "es")
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"translatedText": %q}`, "machine output")
	}))
	defer srv.Close()

	cfg, err := env.site.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, env.site.Update(ctx, store.UpdateSettingsParams{
		SiteName:             cfg.SiteName,
		DefaultLanguage:      cfg.DefaultLanguage,
		AutoTranslateEnabled: true,
		TranslationProvider:  model.ProviderLibreTranslate,
		TranslationAPIURL:    srv.URL,
		TranslationTimeout:   5,
		UpdatedAt:            time.Now(),
	}))

	project := createProject(t, env, SaveProjectRequest{
		Title:       "App",
		Description: "A thing.",
	})
	require.NoError(t, env.queries.UpsertProjectTranslation(ctx, store.UpsertProjectTranslationParams{
		ProjectID:    project.ID,
		LanguageCode: "es",
		Title:        "Aplicación",
		Description:  "Una cosa.",
	}))
	require.NoError(t, env.queries.SetTranslationRecordManual(ctx,
		model.EntityTypeProject, project.ID, "es", time.Now()))

	r := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/admin/translations/project/%d/retry", project.ID), nil)
	rec := serve("/api/admin/translations/{entityType}/{id}/retry", func(w http.ResponseWriter, r *http.Request) {
		env.h.AdminRetryTranslation(w, asUser(r, env.adminUser(t)))
	}, r)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	record, err := env.queries.GetTranslationRecord(ctx, model.EntityTypeProject, project.ID, "es")
	require.NoError(t, err)
	assert.True(t, record.IsManual())

	translation, err := env.queries.GetProjectTranslation(ctx, project.ID, "es")
	require.NoError(t, err)
	assert.Equal(t, "Aplicación", translation.Title)
}
