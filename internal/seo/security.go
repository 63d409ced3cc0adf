// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"fmt"
	"strings"
	"time"
)

// SecurityTxtConfig describes the RFC 9116 fields the site publishes.
// Contact and Expires are the two required fields; a zero Expires
// defaults to one year out.
type SecurityTxtConfig struct {
	Contact            []string
	Expires            time.Time
	Canonical          string
	PreferredLanguages string
	Policy             string
}

// SecurityTxtBuilder renders /.well-known/security.txt content.
type SecurityTxtBuilder struct {
	config SecurityTxtConfig
}

// NewSecurityTxtBuilder creates a builder for the given config.
func NewSecurityTxtBuilder(config SecurityTxtConfig) *SecurityTxtBuilder {
	return &SecurityTxtBuilder{config: config}
}

// Build renders the security.txt body.
func (b *SecurityTxtBuilder) Build() string {
	var sb strings.Builder

	for _, contact := range b.config.Contact {
		if contact != "" {
			fmt.Fprintf(&sb, "Contact: %s\n", contact)
		}
	}

	expires := b.config.Expires
	if expires.IsZero() {
		expires = time.Now().AddDate(1, 0, 0)
	}
	fmt.Fprintf(&sb, "Expires: %s\n", expires.Format(time.RFC3339))

	if b.config.Canonical != "" {
		fmt.Fprintf(&sb, "Canonical: %s\n", b.config.Canonical)
	}
	if b.config.PreferredLanguages != "" {
		fmt.Fprintf(&sb, "Preferred-Languages: %s\n", b.config.PreferredLanguages)
	}
	if b.config.Policy != "" {
		fmt.Fprintf(&sb, "Policy: %s\n", b.config.Policy)
	}

	return sb.String()
}

// GenerateSecurityTxt renders a minimal security.txt with a single
// contact and an explicit expiry.
func GenerateSecurityTxt(contact string, expires time.Time) string {
	return NewSecurityTxtBuilder(SecurityTxtConfig{
		Contact: []string{contact},
		Expires: expires,
	}).Build()
}
