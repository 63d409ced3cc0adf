// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"path/filepath"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"photo.jpg", "photo.jpg", false},
		{"../../etc/passwd", "passwd", false},
		{"dir/photo.jpg", "photo.jpg", false},
		{"..", "", true},
		{".", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := SanitizeFilename(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SanitizeFilename(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFilename(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoinPath(base, "originals", "abc", "photo.jpg")
	if err != nil {
		t.Fatalf("SafeJoinPath: %v", err)
	}
	want := filepath.Join(base, "originals", "abc", "photo.jpg")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := SafeJoinPath(base, "..", "outside"); err == nil {
		t.Error("expected error for path escaping base")
	}
	if _, err := SafeJoinPath(base, "originals", "..", "..", "outside"); err == nil {
		t.Error("expected error for nested traversal")
	}
}
