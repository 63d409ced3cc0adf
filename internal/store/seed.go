// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Languages created on first run. English is the default source language;
// Spanish and French start inactive until an admin enables them.
var seedLanguages = []CreateLanguageParams{
	{Code: "en", Name: "English", NativeName: "English", IsActive: true, Direction: model.DirectionLTR, Position: 0},
	{Code: "es", Name: "Spanish", NativeName: "Español", IsActive: false, Direction: model.DirectionLTR, Position: 1},
	{Code: "fr", Name: "French", NativeName: "Français", IsActive: false, Direction: model.DirectionLTR, Position: 2},
}

// Seed creates initial data in the database: the admin user, the starter
// language set, and the settings row. Writes go through the store directly
// and never enter the translation pipeline.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)
	now := time.Now()

	err := queries.InsertDefaultSettings(ctx, InsertDefaultSettingsParams{
		SiteName:            "Folio",
		DefaultLanguage:     "en",
		TranslationProvider: model.ProviderLibreTranslate,
		TranslationTimeout:  model.DefaultTranslationTimeout,
		UpdatedAt:           now,
	})
	if err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}

	for _, lang := range seedLanguages {
		_, err := queries.GetLanguageByCode(ctx, lang.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking language %s: %w", lang.Code, err)
		}
		lang.CreatedAt = now
		lang.UpdatedAt = now
		if _, err := queries.CreateLanguage(ctx, lang); err != nil {
			return fmt.Errorf("seeding language %s: %w", lang.Code, err)
		}
	}

	_, err = queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         DefaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}
