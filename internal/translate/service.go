// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// Result is one translated string with its attribution metadata.
type Result struct {
	Text       string
	Provider   string
	DurationMs int64
	Cached     bool
}

// Service wraps a Client with an in-memory cache and per-call timing. The
// cache is scoped to the Service instance: each translation job constructs a
// fresh Service, so repeated text within one job is deduplicated while
// nothing persists across jobs. A Service is not safe for concurrent use.
type Service struct {
	client Client
	cache  map[cacheKey]string
}

type cacheKey struct {
	provider string
	source   string
	target   string
	text     string
}

// NewService creates a translation facade around the given client.
func NewService(client Client) *Service {
	return &Service{
		client: client,
		cache:  make(map[cacheKey]string),
	}
}

// NewServiceFromSettings builds a Service for the configured provider. It
// fails fast with ErrNotConfigured when the API URL is blank for a provider
// that needs one or the provider name is unknown; this is a configuration
// error, not a runtime translation failure.
func NewServiceFromSettings(cfg model.SiteSettings) (*Service, error) {
	timeout := time.Duration(cfg.TranslationTimeout) * time.Second
	switch cfg.TranslationProvider {
	case model.ProviderLibreTranslate:
		if cfg.TranslationAPIURL == "" {
			return nil, ErrNotConfigured
		}
		return NewService(NewLibreTranslateClient(cfg.TranslationAPIURL, cfg.TranslationAPIKey, timeout)), nil
	case model.ProviderOpenAI:
		if cfg.TranslationAPIKey == "" {
			return nil, ErrNotConfigured
		}
		return NewService(NewOpenAIClient(cfg.TranslationAPIURL, cfg.TranslationAPIKey, timeout)), nil
	default:
		return nil, ErrNotConfigured
	}
}

// Provider returns the underlying client's provider name.
func (s *Service) Provider() string { return s.client.Provider() }

// Translate translates text from source to target, consulting the instance
// cache first. A cache hit returns with DurationMs zero and Cached set.
// Empty text returns an empty result without a provider call.
func (s *Service) Translate(ctx context.Context, text, source, target string, format Format) (Result, error) {
	provider := s.client.Provider()
	if text == "" {
		return Result{Provider: provider}, nil
	}

	key := cacheKey{provider: provider, source: source, target: target, text: text}
	if cached, ok := s.cache[key]; ok {
		return Result{Text: cached, Provider: provider, Cached: true}, nil
	}

	started := time.Now()
	translated, err := s.client.Translate(ctx, text, source, target, format)
	if err != nil {
		return Result{}, err
	}

	s.cache[key] = translated
	return Result{
		Text:       translated,
		Provider:   provider,
		DurationMs: time.Since(started).Milliseconds(),
	}, nil
}
