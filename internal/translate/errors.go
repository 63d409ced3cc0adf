// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate implements the automatic translation pipeline: provider
// clients, a caching facade, and the orchestrator that fans a default-language
// save out into every active target language.
package translate

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a translation service is requested but
// the provider settings are incomplete: auto-translation enabled with a blank
// API URL, or an unknown provider name.
var ErrNotConfigured = errors.New("translation provider not configured")

// Error is a failed provider call. It carries the provider name and the
// provider's message so failure records stay attributable.
type Error struct {
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }
