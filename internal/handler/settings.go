// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// AdminGetSettings returns the site settings. The provider API key is
// reported only as present or absent.
func (h *Handler) AdminGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.site.Get(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to retrieve settings")
		return
	}
	WriteSuccess(w, settingsToResponse(cfg), nil)
}

// SettingsResponse is the admin view of site settings.
type SettingsResponse struct {
	SiteName             string `json:"site_name"`
	DefaultLanguage      string `json:"default_language"`
	AutoTranslateEnabled bool   `json:"auto_translate_enabled"`
	TranslationProvider  string `json:"translation_provider"`
	TranslationAPIURL    string `json:"translation_api_url"`
	TranslationAPIKeySet bool   `json:"translation_api_key_set"`
	TranslationTimeout   int    `json:"translation_timeout"`
}

func settingsToResponse(cfg model.SiteSettings) SettingsResponse {
	return SettingsResponse{
		SiteName:             cfg.SiteName,
		DefaultLanguage:      cfg.DefaultLanguage,
		AutoTranslateEnabled: cfg.AutoTranslateEnabled,
		TranslationProvider:  cfg.TranslationProvider,
		TranslationAPIURL:    cfg.TranslationAPIURL,
		TranslationAPIKeySet: cfg.TranslationAPIKey != "",
		TranslationTimeout:   cfg.TranslationTimeout,
	}
}

// UpdateSettingsRequest replaces the mutable settings fields. An empty
// TranslationAPIKey keeps the stored key; "-" clears it.
type UpdateSettingsRequest struct {
	SiteName             string `json:"site_name"`
	DefaultLanguage      string `json:"default_language"`
	AutoTranslateEnabled bool   `json:"auto_translate_enabled"`
	TranslationProvider  string `json:"translation_provider"`
	TranslationAPIURL    string `json:"translation_api_url"`
	TranslationAPIKey    string `json:"translation_api_key"`
	TranslationTimeout   int    `json:"translation_timeout"`
}

// AdminUpdateSettings updates the singleton settings row. The default
// language must be an active language; changing it changes which saves
// feed the translation pipeline, existing field sets are untouched.
func (h *Handler) AdminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if req.SiteName == "" {
		fieldErrors["site_name"] = "Site name is required"
	}
	switch req.TranslationProvider {
	case model.ProviderLibreTranslate, model.ProviderOpenAI:
	default:
		fieldErrors["translation_provider"] = "Provider must be libretranslate or openai"
	}
	if req.TranslationTimeout <= 0 {
		req.TranslationTimeout = model.DefaultTranslationTimeout
	}

	ctx := r.Context()
	active, err := h.languages.IsActive(ctx, req.DefaultLanguage)
	if err != nil {
		WriteInternalError(w, "Failed to update settings")
		return
	}
	if !active {
		fieldErrors["default_language"] = "Default language must be an active language"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	current, err := h.site.Get(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to update settings")
		return
	}

	apiKey := current.TranslationAPIKey
	switch req.TranslationAPIKey {
	case "":
	case "-":
		apiKey = ""
	default:
		apiKey = req.TranslationAPIKey
	}

	if err := h.site.Update(ctx, store.UpdateSettingsParams{
		SiteName:             req.SiteName,
		DefaultLanguage:      req.DefaultLanguage,
		AutoTranslateEnabled: req.AutoTranslateEnabled,
		TranslationProvider:  req.TranslationProvider,
		TranslationAPIURL:    req.TranslationAPIURL,
		TranslationAPIKey:    apiKey,
		TranslationTimeout:   req.TranslationTimeout,
		UpdatedAt:            time.Now(),
	}); err != nil {
		WriteInternalError(w, "Failed to update settings")
		return
	}
	h.flushContentCache(ctx)

	_ = h.events.LogConfigEvent(ctx, model.EventLevelInfo, "Site settings updated",
		middleware.GetUserIDPtr(r), map[string]any{
			"default_language":       req.DefaultLanguage,
			"auto_translate_enabled": req.AutoTranslateEnabled,
			"translation_provider":   req.TranslationProvider,
		})

	updated, err := h.site.Get(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to update settings")
		return
	}
	WriteSuccess(w, settingsToResponse(updated), nil)
}
