// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package settings exposes the singleton site configuration: the single
// source of truth for the default language and for whether and how automatic
// translation runs.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/translate"
)

// Service reads and writes the settings row and derives the translation
// fan-out set from the language table.
type Service struct {
	queries *store.Queries
}

// NewService creates a settings service.
func NewService(db *sql.DB) *Service {
	return &Service{queries: store.New(db)}
}

// Get returns the settings row, creating it with provider defaults when
// absent. Creation is idempotent: the row's fixed primary key means two
// concurrent first reads still yield exactly one row.
func (s *Service) Get(ctx context.Context) (model.SiteSettings, error) {
	cfg, err := s.queries.GetSettings(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.SiteSettings{}, err
	}

	err = s.queries.InsertDefaultSettings(ctx, store.InsertDefaultSettingsParams{
		SiteName:            "Folio",
		DefaultLanguage:     "en",
		TranslationProvider: model.ProviderLibreTranslate,
		TranslationTimeout:  model.DefaultTranslationTimeout,
		UpdatedAt:           time.Now(),
	})
	if err != nil {
		return model.SiteSettings{}, err
	}
	return s.queries.GetSettings(ctx)
}

// Update replaces the mutable settings fields.
func (s *Service) Update(ctx context.Context, arg store.UpdateSettingsParams) error {
	arg.UpdatedAt = time.Now()
	return s.queries.UpdateSettings(ctx, arg)
}

// TargetLanguages returns every active language except the default: the
// complete fan-out set for a translation job.
func (s *Service) TargetLanguages(ctx context.Context) ([]model.Language, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	langs, err := s.queries.ListActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	targets := langs[:0]
	for _, l := range langs {
		if l.Code != cfg.DefaultLanguage {
			targets = append(targets, l)
		}
	}
	return targets, nil
}

// TranslationService builds a translation service from the current
// configuration. It returns (nil, nil) when auto-translation is disabled and
// translate.ErrNotConfigured when enabled but incomplete.
func (s *Service) TranslationService(ctx context.Context) (*translate.Service, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.AutoTranslateEnabled {
		return nil, nil
	}
	return translate.NewServiceFromSettings(cfg)
}
