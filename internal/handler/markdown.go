// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts post content for the public API. GFM covers tables,
// strikethrough and autolinks, which the admin editor produces.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// htmlSanitizer strips anything outside safe user-generated content from
// rendered post HTML before it leaves the API.
var htmlSanitizer = bluemonday.UGCPolicy()

// renderMarkdown converts Markdown source to sanitized HTML. A best-effort
// fallback returns the sanitized source when conversion fails, so a broken
// document never takes a public page down.
func renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return htmlSanitizer.Sanitize(source)
	}
	return htmlSanitizer.Sanitize(buf.String())
}
