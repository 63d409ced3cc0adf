// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/settings"
)

// Context keys for language data.
const (
	ContextKeyLanguage     ContextKey = "language"
	ContextKeyLanguageCode ContextKey = "language_code"
)

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "folio_lang"

// Language creates middleware that resolves the content language for the
// request. Priority order:
//  1. Query parameter ?lang=XX (explicit switch, updates the cookie)
//  2. Cookie preference
//  3. Accept-Language header, matched against active languages
//  4. The site's default language
//
// Only active languages are eligible; an unknown or inactive code falls
// through to the next source.
func Language(langs *cache.LanguageCache, site *settings.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			active, err := langs.GetActive(ctx)
			if err != nil || len(active) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			langMap := make(map[string]model.Language, len(active))
			for _, lang := range active {
				langMap[strings.ToLower(lang.Code)] = lang
			}

			// 1. Explicit ?lang=XX switch updates the cookie.
			if queryLang := r.URL.Query().Get("lang"); queryLang != "" {
				if lang, ok := langMap[strings.ToLower(queryLang)]; ok {
					SetLanguageCookie(w, lang.Code)
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			// 2. Cookie preference.
			if cookie, err := r.Cookie(LanguageCookieName); err == nil {
				if lang, ok := langMap[strings.ToLower(cookie.Value)]; ok {
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			// 3. Accept-Language negotiation.
			if accept := r.Header.Get("Accept-Language"); accept != "" {
				if lang := matchAcceptLanguage(accept, active); lang != nil {
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, *lang)))
					return
				}
			}

			// 4. Site default.
			cfg, err := site.Get(ctx)
			if err == nil {
				if lang, ok := langMap[strings.ToLower(cfg.DefaultLanguage)]; ok {
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			// Default language missing or inactive; fall back to the first
			// active language so the request still carries one.
			next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, active[0])))
		})
	}
}

// matchAcceptLanguage finds the best active language for an Accept-Language
// header value. Returns nil if nothing matches.
func matchAcceptLanguage(accept string, active []model.Language) *model.Language {
	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(desired) == 0 {
		return nil
	}

	supported := make([]language.Tag, 0, len(active))
	indexes := make([]int, 0, len(active))
	for i, lang := range active {
		tag, err := language.Parse(lang.Code)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		indexes = append(indexes, i)
	}
	if len(supported) == 0 {
		return nil
	}

	matcher := language.NewMatcher(supported)
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return nil
	}
	return &active[indexes[idx]]
}

// setLanguageContext adds the resolved language to the context.
func setLanguageContext(ctx context.Context, lang model.Language) context.Context {
	ctx = context.WithValue(ctx, ContextKeyLanguage, lang)
	return context.WithValue(ctx, ContextKeyLanguageCode, lang.Code)
}

// GetLanguage retrieves the current language from the request context.
// Returns nil if no language was resolved.
func GetLanguage(r *http.Request) *model.Language {
	lang, ok := r.Context().Value(ContextKeyLanguage).(model.Language)
	if !ok {
		return nil
	}
	return &lang
}

// GetLanguageCode returns the resolved language code, or "" if none.
func GetLanguageCode(r *http.Request) string {
	code, _ := r.Context().Value(ContextKeyLanguageCode).(string)
	return code
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, langCode string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    langCode,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
