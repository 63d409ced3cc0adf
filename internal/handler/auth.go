// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/util"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the user shape returned by auth endpoints.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func userToResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Login authenticates an admin and establishes a session. Failures are
// answered identically whether the account exists or the password is
// wrong, and each failure counts toward the account lockout.
func (h *Handler) Login(protection *middleware.LoginProtection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			WriteValidationError(w, map[string]string{"email": "Email and password are required"})
			return
		}

		if locked, retryAfter := protection.IsAccountLocked(email); locked {
			w.Header().Set("Retry-After", retryAfter.Round(time.Second).String())
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				"Too many failed attempts, try again later", nil)
			return
		}

		ctx := r.Context()
		user, err := h.queries.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Login failed")
			return
		}

		ok := false
		if err == nil {
			ok, err = auth.CheckPassword(req.Password, user.PasswordHash)
			if err != nil {
				WriteInternalError(w, "Login failed")
				return
			}
		}
		if !ok {
			protection.RecordFailedAttempt(email)
			_ = h.events.LogAuthEvent(ctx, model.EventLevelWarning, "Failed login attempt", nil,
				map[string]any{"email": email, "ip": util.ClientIP(r)})
			WriteUnauthorized(w, "Invalid email or password")
			return
		}

		protection.RecordSuccessfulLogin(email)

		// Hashes created under older argon2 cost settings are upgraded
		// while the plaintext is at hand.
		if auth.NeedsRehash(user.PasswordHash) {
			if hash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
				if updErr := h.queries.UpdateUserPassword(ctx, user.ID, hash, time.Now()); updErr != nil {
					h.logger.Error("rehash password", "error", updErr, "user_id", user.ID)
				}
			}
		}

		// A fresh token on privilege change blocks session fixation.
		if err := h.sessions.RenewToken(ctx); err != nil {
			WriteInternalError(w, "Login failed")
			return
		}
		h.sessions.Put(ctx, middleware.SessionKeyUserID, user.ID)

		now := time.Now()
		if err := h.queries.UpdateUserLastLogin(ctx, user.ID, now); err != nil {
			h.logger.Error("update last login", "error", err, "user_id", user.ID)
		}
		_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "User logged in: "+user.Email,
			&user.ID, map[string]any{"ip": util.ClientIP(r)})

		WriteSuccess(w, userToResponse(user), nil)
	}
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDPtr(r)
	email := middleware.GetUserEmail(r)

	if err := h.sessions.Destroy(ctx); err != nil {
		WriteInternalError(w, "Logout failed")
		return
	}
	if email != "" {
		_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "User logged out: "+email, userID, nil)
	}
	WriteNoContent(w)
}

// CurrentUser returns the authenticated user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, userToResponse(*user), nil)
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the authenticated user's password after
// re-verifying the current one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 12 {
		WriteValidationError(w, map[string]string{"new_password": "Password must be at least 12 characters"})
		return
	}

	ctx := r.Context()
	ok, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}
	if !ok {
		WriteForbidden(w, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}
	if err := h.queries.UpdateUserPassword(ctx, user.ID, hash, time.Now()); err != nil {
		WriteInternalError(w, "Failed to change password")
		return
	}

	_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "Password changed: "+user.Email, &user.ID, nil)
	WriteNoContent(w)
}
