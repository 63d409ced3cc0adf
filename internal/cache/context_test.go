// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import "testing"

func TestNewContext(t *testing.T) {
	if c := NewContext(""); c.LanguageCode != "en" {
		t.Errorf("empty language defaulted to %q, want en", c.LanguageCode)
	}
	if c := NewContext("fr"); c.LanguageCode != "fr" {
		t.Errorf("LanguageCode = %q, want fr", c.LanguageCode)
	}
}

func TestContextKeys(t *testing.T) {
	c := NewContext("es")

	if got := c.Key("projects"); got != "es:projects" {
		t.Errorf("Key = %q", got)
	}
	if got := c.SlugKey("post", "hello-world"); got != "es:post:hello-world" {
		t.Errorf("SlugKey = %q", got)
	}
	if got := c.IDKey("project", 42); got != "es:project:42" {
		t.Errorf("IDKey = %q", got)
	}
}

func TestContextKeysDifferPerLanguage(t *testing.T) {
	en := NewContext("en").SlugKey("post", "hello")
	es := NewContext("es").SlugKey("post", "hello")
	if en == es {
		t.Errorf("keys should differ per language, both %q", en)
	}
}
