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
	"github.com/olegiv/folio-go/internal/store"
)

// PublicProfileResponse merges the profile row with one language's
// field set.
type PublicProfileResponse struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	GithubURL   string   `json:"github_url,omitempty"`
	LinkedinURL string   `json:"linkedin_url,omitempty"`
	PhotoPath   string   `json:"photo_path,omitempty"`
	Language    string   `json:"language"`
	SEO         *SEOData `json:"seo,omitempty"`
}

// PublicProfile returns the profile in the negotiated language. A missing
// field set falls back to the default language so the page never renders
// empty.
func (h *Handler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.queries.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
			return
		}
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}

	lang := middleware.GetLanguageCode(r)
	tr, usedLang, err := h.profileTranslation(ctx, profile.ID, lang)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}

	WriteSuccess(w, PublicProfileResponse{
		Name:        tr.Name,
		Title:       tr.Title,
		Bio:         tr.Bio,
		Location:    tr.Location,
		Email:       profile.Email,
		Phone:       profile.Phone,
		Website:     profile.Website,
		GithubURL:   profile.GithubURL,
		LinkedinURL: profile.LinkedinURL,
		PhotoPath:   profile.PhotoPath,
		Language:    usedLang,
		SEO:         h.profileSEO(ctx, profile, tr),
	}, nil)
}

// profileTranslation fetches the field set for lang, falling back to the
// site default language. Returns the language actually served.
func (h *Handler) profileTranslation(ctx context.Context, profileID int64, lang string) (model.ProfileTranslation, string, error) {
	tr, err := h.queries.GetProfileTranslation(ctx, profileID, lang)
	if err == nil {
		return tr, lang, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.ProfileTranslation{}, "", err
	}

	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		return model.ProfileTranslation{}, "", err
	}
	if defaultLang == lang {
		return model.ProfileTranslation{}, lang, nil
	}
	tr, err = h.queries.GetProfileTranslation(ctx, profileID, defaultLang)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProfileTranslation{}, defaultLang, nil
		}
		return model.ProfileTranslation{}, "", err
	}
	return tr, defaultLang, nil
}

// AdminProfileResponse is the profile with every language's field set.
type AdminProfileResponse struct {
	Profile      model.Profile              `json:"profile"`
	Translations []model.ProfileTranslation `json:"translations"`
}

// AdminGetProfile returns the profile and all of its field sets.
func (h *Handler) AdminGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.queries.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
			return
		}
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}

	translations, err := h.queries.ListProfileTranslations(ctx, profile.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}

	WriteSuccess(w, AdminProfileResponse{Profile: profile, Translations: translations}, nil)
}

// SaveProfileRequest creates or updates the profile. Language selects
// which field set the translatable fields land in; empty means the site
// default.
type SaveProfileRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
	PhotoPath   string `json:"photo_path"`

	Language string `json:"language"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

// AdminSaveProfile creates the profile on first save and updates it
// afterwards. A default-language save queues machine translation; a save
// in any other language marks that field set as human-owned.
func (h *Handler) AdminSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		if errors.Is(err, errUnknownLanguage) {
			WriteValidationError(w, map[string]string{"language": "Unknown or inactive language"})
			return
		}
		WriteInternalError(w, "Failed to save profile")
		return
	}

	now := time.Now()
	profile, err := h.queries.GetProfile(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		profile, err = h.queries.CreateProfile(ctx, store.CreateProfileParams{
			Email:       req.Email,
			Phone:       req.Phone,
			Website:     req.Website,
			GithubURL:   req.GithubURL,
			LinkedinURL: req.LinkedinURL,
			PhotoPath:   req.PhotoPath,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			WriteInternalError(w, "Failed to save profile")
			return
		}
	case err != nil:
		WriteInternalError(w, "Failed to save profile")
		return
	default:
		err = h.queries.UpdateProfile(ctx, store.UpdateProfileParams{
			ID:          profile.ID,
			Email:       req.Email,
			Phone:       req.Phone,
			Website:     req.Website,
			GithubURL:   req.GithubURL,
			LinkedinURL: req.LinkedinURL,
			PhotoPath:   req.PhotoPath,
			UpdatedAt:   now,
		})
		if err != nil {
			WriteInternalError(w, "Failed to save profile")
			return
		}
	}

	if err := h.queries.UpsertProfileTranslation(ctx, store.UpsertProfileTranslationParams{
		ProfileID:    profile.ID,
		LanguageCode: lang,
		Name:         req.Name,
		Title:        req.Title,
		Bio:          req.Bio,
		Location:     req.Location,
	}); err != nil {
		WriteInternalError(w, "Failed to save profile")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeProfile, profile.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Profile saved",
		middleware.GetUserIDPtr(r), map[string]any{"language": lang})

	profile, err = h.queries.GetProfileByID(ctx, profile.ID)
	if err != nil {
		WriteInternalError(w, "Failed to save profile")
		return
	}
	WriteSuccess(w, profile, nil)
}

// afterTranslatableSave runs the post-save translation bookkeeping: a
// default-language save schedules machine translation of the other active
// languages, any other save claims the field set for its human author.
func (h *Handler) afterTranslatableSave(ctx context.Context, entityType string, entityID int64, lang string) {
	h.invalidateContentCache(ctx, entityType)

	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		h.logger.Error("resolve default language", "error", err)
		return
	}
	if lang == defaultLang {
		h.translator.Schedule(ctx, entityType, entityID, lang)
		return
	}
	if err := h.queries.SetTranslationRecordManual(ctx, entityType, entityID, lang, time.Now()); err != nil {
		h.logger.Error("mark translation manual", "error", err,
			"entity_type", entityType, "entity_id", entityID, "language", lang)
	}
}
