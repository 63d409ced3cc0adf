// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/session"
	"github.com/olegiv/folio-go/internal/settings"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
	"github.com/olegiv/folio-go/internal/translate"
)

type testEnv struct {
	h       *Handler
	db      *sql.DB
	queries *store.Queries
	site    *settings.Service
	langs   *cache.LanguageCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, db))

	site := settings.NewService(db)
	queries := store.New(db)
	langs := cache.NewLanguageCache(queries)
	logger := testutil.TestLoggerSilent()

	h := New(Config{
		DB:         db,
		Sessions:   session.New(db, true),
		Site:       site,
		Languages:  langs,
		Translator: translate.NewTranslator(db, site, logger, translate.DefaultConfig()),
		Events:     service.NewEventService(db),
		Media:      service.NewMediaService(t.TempDir()),
		Content:    cache.NewSimpleMemoryCache(time.Minute),
		Logger:     logger,
		BaseURL:    "https://example.com",
		IsDev:      true,
	})

	return &testEnv{h: h, db: db, queries: queries, site: site, langs: langs}
}

// activateLanguage flips a seeded language on so it becomes a translation
// target and a servable public language.
func (e *testEnv) activateLanguage(t *testing.T, code string) {
	t.Helper()
	ctx := context.Background()
	lang, err := e.queries.GetLanguageByCode(ctx, code)
	require.NoError(t, err)
	require.NoError(t, e.queries.UpdateLanguage(ctx, store.UpdateLanguageParams{
		ID:         lang.ID,
		Name:       lang.Name,
		NativeName: lang.NativeName,
		IsActive:   true,
		Direction:  lang.Direction,
		Position:   lang.Position,
		UpdatedAt:  time.Now(),
	}))
	e.langs.Invalidate()
}

// adminUser returns the seeded admin.
func (e *testEnv) adminUser(t *testing.T) model.User {
	t.Helper()
	user, err := e.queries.GetUserByEmail(context.Background(), store.DefaultAdminEmail)
	require.NoError(t, err)
	return user
}

// asUser attaches an authenticated user to the request context the way
// the session middleware would.
func asUser(r *http.Request, user model.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, user)
	return r.WithContext(ctx)
}

// withLang attaches a resolved language code to the request context the
// way the language middleware would.
func withLang(r *http.Request, code string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyLanguageCode, code)
	return r.WithContext(ctx)
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	r := httptest.NewRequest(method, target, rd)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// serve routes the request through a single-route chi router so URL
// parameters resolve.
func serve(pattern string, fn http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Handle(pattern, fn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

// decodeData unmarshals the "data" member of a response envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) *Meta {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta *Meta           `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Meta
}

// decodeError unmarshals an error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var envelope ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error
}
