// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
)

// Context carries the request language for cache key generation. Public
// content is cached per language since every translatable entity resolves
// differently under each active language.
type Context struct {
	LanguageCode string
}

// NewContext creates a Context, defaulting to English when no language is
// negotiated yet.
func NewContext(langCode string) Context {
	if langCode == "" {
		langCode = "en"
	}
	return Context{LanguageCode: langCode}
}

// Key builds a cache key for a named collection.
// Format: {lang}:{kind}
func (c Context) Key(kind string) string {
	return fmt.Sprintf("%s:%s", c.LanguageCode, kind)
}

// SlugKey builds a cache key for an entity addressed by slug.
// Format: {lang}:{kind}:{slug}
func (c Context) SlugKey(kind, slug string) string {
	return fmt.Sprintf("%s:%s:%s", c.LanguageCode, kind, slug)
}

// IDKey builds a cache key for an entity addressed by ID.
// Format: {lang}:{kind}:{id}
func (c Context) IDKey(kind string, id int64) string {
	return fmt.Sprintf("%s:%s:%d", c.LanguageCode, kind, id)
}
