// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"regexp"
	"time"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// languageCodePattern matches ISO 639-1 codes with an optional region
// subtag, e.g. "en", "pt-br".
var languageCodePattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]{2})?$`)

// PublicListLanguages returns the active languages for the language
// switcher, in configured order.
func (h *Handler) PublicListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.languages.GetActive(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to retrieve languages")
		return
	}
	WriteSuccess(w, languages, nil)
}

// AdminListLanguages returns every configured language.
func (h *Handler) AdminListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.queries.ListLanguages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to retrieve languages")
		return
	}
	WriteSuccess(w, languages, nil)
}

// SaveLanguageRequest creates or updates a language. Code is immutable
// after creation.
type SaveLanguageRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsActive   bool   `json:"is_active"`
	Direction  string `json:"direction"`
	Position   int    `json:"position"`
}

func validateLanguageRequest(req *SaveLanguageRequest, requireCode bool) map[string]string {
	fieldErrors := map[string]string{}
	if requireCode && !languageCodePattern.MatchString(req.Code) {
		fieldErrors["code"] = "Code must be a lowercase ISO 639-1 code"
	}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.NativeName == "" {
		req.NativeName = req.Name
	}
	if req.Direction == "" {
		req.Direction = model.DirectionLTR
	}
	if req.Direction != model.DirectionLTR && req.Direction != model.DirectionRTL {
		fieldErrors["direction"] = "Direction must be ltr or rtl"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// AdminCreateLanguage adds a language. Newly activated languages become
// translation targets on the next default-language save.
func (h *Handler) AdminCreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req SaveLanguageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateLanguageRequest(&req, true); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	if _, ok, err := h.languages.GetByCode(ctx, req.Code); err != nil {
		WriteInternalError(w, "Failed to create language")
		return
	} else if ok {
		WriteConflict(w, "Language already exists")
		return
	}

	now := time.Now()
	language, err := h.queries.CreateLanguage(ctx, store.CreateLanguageParams{
		Code:       req.Code,
		Name:       req.Name,
		NativeName: req.NativeName,
		IsActive:   req.IsActive,
		Direction:  req.Direction,
		Position:   req.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create language")
		return
	}
	h.languages.Invalidate()
	h.flushContentCache(ctx)

	_ = h.events.LogConfigEvent(ctx, model.EventLevelInfo, "Language added: "+language.Code,
		middleware.GetUserIDPtr(r), nil)

	WriteCreated(w, language)
}

// AdminUpdateLanguage updates a language. The site default language
// cannot be deactivated.
func (h *Handler) AdminUpdateLanguage(w http.ResponseWriter, r *http.Request) {
	language, ok := requireEntityByID(w, r, "language", func(id int64) (model.Language, error) {
		return h.getLanguageByID(r, id)
	})
	if !ok {
		return
	}

	var req SaveLanguageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateLanguageRequest(&req, false); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to update language")
		return
	}
	if language.Code == defaultLang && !req.IsActive {
		WriteConflict(w, "The default language cannot be deactivated")
		return
	}

	if err := h.queries.UpdateLanguage(ctx, store.UpdateLanguageParams{
		ID:         language.ID,
		Name:       req.Name,
		NativeName: req.NativeName,
		IsActive:   req.IsActive,
		Direction:  req.Direction,
		Position:   req.Position,
		UpdatedAt:  time.Now(),
	}); err != nil {
		WriteInternalError(w, "Failed to update language")
		return
	}
	h.languages.Invalidate()
	h.flushContentCache(ctx)

	_ = h.events.LogConfigEvent(ctx, model.EventLevelInfo, "Language updated: "+language.Code,
		middleware.GetUserIDPtr(r), map[string]any{"is_active": req.IsActive})

	updated, _, err := h.languages.GetByCode(ctx, language.Code)
	if err != nil {
		WriteInternalError(w, "Failed to update language")
		return
	}
	WriteSuccess(w, updated, nil)
}

// AdminDeleteLanguage removes a language. The default language is
// protected; translated field sets for the removed language are kept in
// place and simply stop being served.
func (h *Handler) AdminDeleteLanguage(w http.ResponseWriter, r *http.Request) {
	language, ok := requireEntityByID(w, r, "language", func(id int64) (model.Language, error) {
		return h.getLanguageByID(r, id)
	})
	if !ok {
		return
	}

	ctx := r.Context()
	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to delete language")
		return
	}
	if language.Code == defaultLang {
		WriteConflict(w, "The default language cannot be deleted")
		return
	}

	if err := h.queries.DeleteLanguage(ctx, language.ID); err != nil {
		WriteInternalError(w, "Failed to delete language")
		return
	}
	h.languages.Invalidate()
	h.flushContentCache(ctx)

	_ = h.events.LogConfigEvent(ctx, model.EventLevelInfo, "Language deleted: "+language.Code,
		middleware.GetUserIDPtr(r), nil)

	WriteNoContent(w)
}

// getLanguageByID scans the full language list; the table holds a
// handful of rows.
func (h *Handler) getLanguageByID(r *http.Request, id int64) (model.Language, error) {
	languages, err := h.queries.ListLanguages(r.Context())
	if err != nil {
		return model.Language{}, err
	}
	for _, l := range languages {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Language{}, sql.ErrNoRows
}
