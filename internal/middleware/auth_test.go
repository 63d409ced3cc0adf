// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, role string) model.User {
	t.Helper()
	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        role + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Name:         "Test " + role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func withUser(r *http.Request, user model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

func TestLoadUser_NoSession(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sessions := scs.New()

	var got *model.User
	handler := sessions.LoadAndSave(LoadUser(sessions, db)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			got = GetUser(r)
		})))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Errorf("expected no user in context, got %+v", got)
	}
}

func TestLoadUser_WithSession(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	user := createTestUser(t, db, model.RoleAdmin)
	sessions := scs.New()

	var got *model.User
	inner := LoadUser(sessions, db)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			got = GetUser(r)
		}))
	// Put the user ID in the session before LoadUser runs, as a login
	// handler would.
	handler := sessions.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions.Put(r.Context(), SessionKeyUserID, user.ID)
		inner.ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != user.ID || got.Email != user.Email {
		t.Errorf("loaded user = %+v, want %+v", got, user)
	}
}

func TestLoadUser_StaleSession(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sessions := scs.New()

	var got *model.User
	inner := LoadUser(sessions, db)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			got = GetUser(r)
		}))
	handler := sessions.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions.Put(r.Context(), SessionKeyUserID, int64(9999)) // no such user
		inner.ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Errorf("expected no user for stale session, got %+v", got)
	}
}

func TestRequireAuth(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	user := createTestUser(t, db, model.RoleAdmin)

	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Without a user: 401 with a JSON error body.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	var resp JSONError
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Error.Code != "unauthorized" {
		t.Errorf("error code = %q, want %q", resp.Error.Code, "unauthorized")
	}

	// With a user: pass through.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, withUser(httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil), user))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAdmin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	admin := createTestUser(t, db, model.RoleAdmin)
	other := createTestUser(t, db, "viewer")

	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"non-admin", &other, http.StatusForbidden},
		{"admin", &admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
			if tt.user != nil {
				req = withUser(req, *tt.user)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestUserContextHelpers(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	user := createTestUser(t, db, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUserID(req) != 0 {
		t.Error("GetUserID should return 0 without a user")
	}
	if GetUserIDPtr(req) != nil {
		t.Error("GetUserIDPtr should return nil without a user")
	}
	if GetUserEmail(req) != "" {
		t.Error("GetUserEmail should return empty without a user")
	}

	req = withUser(req, user)
	if GetUserID(req) != user.ID {
		t.Errorf("GetUserID = %d, want %d", GetUserID(req), user.ID)
	}
	if ptr := GetUserIDPtr(req); ptr == nil || *ptr != user.ID {
		t.Errorf("GetUserIDPtr = %v, want %d", ptr, user.ID)
	}
	if GetUserEmail(req) != user.Email {
		t.Errorf("GetUserEmail = %q, want %q", GetUserEmail(req), user.Email)
	}
}
