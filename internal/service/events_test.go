// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/olegiv/folio-go/internal/model"
)

func setupEventTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Matches the events table in the migrations.
	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT 'info',
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			user_id INTEGER,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("failed to create events table: %v", err)
	}

	return db
}

func TestLogEvent(t *testing.T) {
	db := setupEventTestDB(t)

	svc := NewEventService(db)
	ctx := context.Background()

	userID := int64(123)
	err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryContent, "Test message", &userID, map[string]any{
		"key": "value",
	})
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var level, category, message, metadata string
	var savedUserID sql.NullInt64
	err = db.QueryRow("SELECT level, category, message, user_id, metadata FROM events").
		Scan(&level, &category, &message, &savedUserID, &metadata)
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}

	if level != "info" {
		t.Errorf("level = %q, want %q", level, "info")
	}
	if category != "content" {
		t.Errorf("category = %q, want %q", category, "content")
	}
	if message != "Test message" {
		t.Errorf("message = %q, want %q", message, "Test message")
	}
	if !savedUserID.Valid || savedUserID.Int64 != 123 {
		t.Errorf("user_id = %v, want 123", savedUserID)
	}
	if metadata != `{"key":"value"}` {
		t.Errorf("metadata = %q, want %q", metadata, `{"key":"value"}`)
	}
}

func TestLogEvent_NilUserID(t *testing.T) {
	db := setupEventTestDB(t)

	svc := NewEventService(db)
	if err := svc.LogEvent(context.Background(), model.EventLevelWarning, model.EventCategorySystem, "No user", nil, nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var savedUserID sql.NullInt64
	if err := db.QueryRow("SELECT user_id FROM events").Scan(&savedUserID); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if savedUserID.Valid {
		t.Error("user_id should be NULL")
	}
}

func TestLogEvent_NilMetadata(t *testing.T) {
	db := setupEventTestDB(t)

	svc := NewEventService(db)
	if err := svc.LogEvent(context.Background(), model.EventLevelInfo, model.EventCategoryAuth, "Test", nil, nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var metadata string
	if err := db.QueryRow("SELECT metadata FROM events").Scan(&metadata); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if metadata != "{}" {
		t.Errorf("metadata = %q, want %q", metadata, "{}")
	}
}

// testEventField checks that a logging helper writes the expected column value.
func testEventField(t *testing.T, db *sql.DB, logFn func(*EventService, context.Context) error, fieldName, expected string) {
	t.Helper()
	svc := NewEventService(db)

	if err := logFn(svc, context.Background()); err != nil {
		t.Fatalf("log function failed: %v", err)
	}

	var got string
	if err := db.QueryRow("SELECT " + fieldName + " FROM events").Scan(&got); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if got != expected {
		t.Errorf("%s = %q, want %q", fieldName, got, expected)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(*EventService, context.Context) error
		expected string
	}{
		{"info", func(svc *EventService, ctx context.Context) error {
			return svc.LogInfo(ctx, model.EventCategoryContent, "Post created", nil, nil)
		}, "info"},
		{"warning", func(svc *EventService, ctx context.Context) error {
			return svc.LogWarning(ctx, model.EventCategorySystem, "Low disk space", nil, nil)
		}, "warning"},
		{"error", func(svc *EventService, ctx context.Context) error {
			return svc.LogError(ctx, model.EventCategoryAuth, "Login failed", nil, nil)
		}, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupEventTestDB(t)
			testEventField(t, db, tt.logFn, "level", tt.expected)
		})
	}
}

func TestLogCategoryEvents(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(*EventService, context.Context) error
		expected string
	}{
		{"auth", func(svc *EventService, ctx context.Context) error {
			return svc.LogAuthEvent(ctx, model.EventLevelInfo, "User logged in", nil, nil)
		}, "auth"},
		{"content", func(svc *EventService, ctx context.Context) error {
			return svc.LogContentEvent(ctx, model.EventLevelInfo, "Project published", nil, nil)
		}, "content"},
		{"translation", func(svc *EventService, ctx context.Context) error {
			return svc.LogTranslationEvent(ctx, model.EventLevelInfo, "Post translated", nil)
		}, "translation"},
		{"config", func(svc *EventService, ctx context.Context) error {
			return svc.LogConfigEvent(ctx, model.EventLevelInfo, "Settings updated", nil, nil)
		}, "config"},
		{"system", func(svc *EventService, ctx context.Context) error {
			return svc.LogSystemEvent(ctx, model.EventLevelInfo, "Server started", nil)
		}, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupEventTestDB(t)
			testEventField(t, db, tt.logFn, "category", tt.expected)
		})
	}
}

func TestDeleteOldEvents(t *testing.T) {
	db := setupEventTestDB(t)

	svc := NewEventService(db)
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO events (level, category, message, metadata, created_at)
		VALUES ('info', 'system', 'Old event', '{}', datetime('now', '-31 days'))
	`)
	if err != nil {
		t.Fatalf("failed to insert old event: %v", err)
	}

	if err := svc.LogSystemEvent(ctx, model.EventLevelInfo, "Recent event", nil); err != nil {
		t.Fatalf("LogSystemEvent failed: %v", err)
	}

	purged, err := svc.DeleteOldEvents(ctx, 30*24*60*60*1e9)
	if err != nil {
		t.Fatalf("DeleteOldEvents failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if count != 1 {
		t.Errorf("event count after delete = %d, want 1", count)
	}
}
