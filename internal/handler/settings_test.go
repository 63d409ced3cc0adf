// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio-go/internal/model"
)

func updateSettings(t *testing.T, env *testEnv, req UpdateSettingsRequest) *httptest.ResponseRecorder {
	t.Helper()
	r := jsonRequest(t, http.MethodPut, "/api/admin/settings", req)
	rec := httptest.NewRecorder()
	env.h.AdminUpdateSettings(rec, asUser(r, env.adminUser(t)))
	return rec
}

func TestAdminGetSettings_HidesAPIKey(t *testing.T) {
	env := newTestEnv(t)

	rec := updateSettings(t, env, UpdateSettingsRequest{
		SiteName:            "Folio",
		DefaultLanguage:     "en",
		TranslationProvider: model.ProviderLibreTranslate,
		TranslationAPIKey:   "secret-key",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	r := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	rec = httptest.NewRecorder()
	env.h.AdminGetSettings(rec, asUser(r, env.adminUser(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "secret-key")

	var resp SettingsResponse
	decodeData(t, rec, &resp)
	assert.True(t, resp.TranslationAPIKeySet)
}

func TestAdminUpdateSettings_APIKeyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := UpdateSettingsRequest{
		SiteName:            "Folio",
		DefaultLanguage:     "en",
		TranslationProvider: model.ProviderLibreTranslate,
	}

	base.TranslationAPIKey = "secret-key"
	require.Equal(t, http.StatusOK, updateSettings(t, env, base).Code)

	// Empty key on a later save keeps the stored one.
	base.TranslationAPIKey = ""
	require.Equal(t, http.StatusOK, updateSettings(t, env, base).Code)
	cfg, err := env.site.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.TranslationAPIKey)

	// "-" clears it.
	base.TranslationAPIKey = "-"
	require.Equal(t, http.StatusOK, updateSettings(t, env, base).Code)
	cfg, err = env.site.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cfg.TranslationAPIKey)
}

func TestAdminUpdateSettings_DefaultLanguageMustBeActive(t *testing.T) {
	env := newTestEnv(t)

	rec := updateSettings(t, env, UpdateSettingsRequest{
		SiteName:            "Folio",
		DefaultLanguage:     "es",
		TranslationProvider: model.ProviderLibreTranslate,
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "default_language")
}

func TestAdminUpdateSettings_ValidatesProvider(t *testing.T) {
	env := newTestEnv(t)

	rec := updateSettings(t, env, UpdateSettingsRequest{
		SiteName:            "Folio",
		DefaultLanguage:     "en",
		TranslationProvider: "deepl",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "translation_provider")
}

func TestAdminUpdateSettings_TimeoutDefaulted(t *testing.T) {
	env := newTestEnv(t)

	rec := updateSettings(t, env, UpdateSettingsRequest{
		SiteName:            "Folio",
		DefaultLanguage:     "en",
		TranslationProvider: model.ProviderOpenAI,
		TranslationTimeout:  0,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SettingsResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, model.DefaultTranslationTimeout, resp.TranslationTimeout)
}

func TestAdminUpdateSettings_ChangeDefaultLanguage(t *testing.T) {
	env := newTestEnv(t)
	env.activateLanguage(t, "es")

	rec := updateSettings(t, env, UpdateSettingsRequest{
		SiteName:            "Folio",
		DefaultLanguage:     "es",
		TranslationProvider: model.ProviderLibreTranslate,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cfg, err := env.site.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.DefaultLanguage)
}
