// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// LanguageCache serves the language list from memory. Every public request
// needs the active languages for negotiation, so they are loaded once and
// invalidated explicitly when the admin changes them.
type LanguageCache struct {
	queries *store.Queries

	mu     sync.RWMutex
	all    []model.Language
	active []model.Language
	byCode map[string]model.Language
	loaded bool
}

// NewLanguageCache creates a new language cache.
func NewLanguageCache(queries *store.Queries) *LanguageCache {
	return &LanguageCache{
		queries: queries,
		byCode:  make(map[string]model.Language),
	}
}

// GetAll returns every configured language.
func (c *LanguageCache) GetAll(ctx context.Context) ([]model.Language, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]model.Language, len(c.all))
	copy(result, c.all)
	return result, nil
}

// GetActive returns languages enabled for the site.
func (c *LanguageCache) GetActive(ctx context.Context) ([]model.Language, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]model.Language, len(c.active))
	copy(result, c.active)
	return result, nil
}

// GetByCode looks up a language by its ISO code.
func (c *LanguageCache) GetByCode(ctx context.Context, code string) (model.Language, bool, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return model.Language{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	lang, ok := c.byCode[code]
	return lang, ok, nil
}

// IsActive reports whether code names an active language.
func (c *LanguageCache) IsActive(ctx context.Context, code string) (bool, error) {
	lang, ok, err := c.GetByCode(ctx, code)
	if err != nil {
		return false, err
	}
	return ok && lang.IsActive, nil
}

// Invalidate drops the cached list; the next read reloads from the store.
// Call after any language create/update/delete.
func (c *LanguageCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = nil
	c.active = nil
	c.byCode = make(map[string]model.Language)
	c.loaded = false
}

func (c *LanguageCache) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	langs, err := c.queries.ListLanguages(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = langs
	c.active = c.active[:0]
	c.byCode = make(map[string]model.Language, len(langs))
	for _, l := range langs {
		c.byCode[l.Code] = l
		if l.IsActive {
			c.active = append(c.active, l)
		}
	}
	c.loaded = true
	return nil
}
