// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"
	"time"
)

func TestNullInt64FromPtr(t *testing.T) {
	if got := NullInt64FromPtr(nil); got.Valid {
		t.Error("nil pointer should yield invalid NullInt64")
	}
	v := int64(42)
	got := NullInt64FromPtr(&v)
	if !got.Valid || got.Int64 != 42 {
		t.Errorf("got %+v, want valid 42", got)
	}
}

func TestNullTimeFromPtr(t *testing.T) {
	if got := NullTimeFromPtr(nil); got.Valid {
		t.Error("nil pointer should yield invalid NullTime")
	}
	now := time.Now()
	got := NullTimeFromPtr(&now)
	if !got.Valid || !got.Time.Equal(now) {
		t.Errorf("got %+v, want valid %v", got, now)
	}
}
