// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

func newTestScheduler(t *testing.T) (*Scheduler, *store.Queries) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	s := New(db, service.NewEventService(db), testutil.TestLoggerSilent(), Config{
		VisitRetentionDays: 90,
		EventRetentionDays: 180,
	})
	return s, store.New(db)
}

func createScheduledPost(t *testing.T, queries *store.Queries, slug string, scheduledAt time.Time) model.Post {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email:        slug + "@example.com",
		PasswordHash: "x",
		Role:         model.RoleAdmin,
		Name:         "Author",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	post, err := queries.CreatePost(ctx, store.CreatePostParams{
		Slug:        slug,
		Status:      model.PostStatusScheduled,
		AuthorID:    user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		ScheduledAt: sql.NullTime{Time: scheduledAt, Valid: true},
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	return post
}

func TestPublishDuePosts(t *testing.T) {
	s, queries := newTestScheduler(t)
	ctx := context.Background()

	due := createScheduledPost(t, queries, "due-post", time.Now().Add(-time.Minute))
	future := createScheduledPost(t, queries, "future-post", time.Now().Add(time.Hour))

	if err := s.publishDuePosts(); err != nil {
		t.Fatalf("publishDuePosts: %v", err)
	}

	got, err := queries.GetPost(ctx, due.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Status != model.PostStatusPublished {
		t.Errorf("due post status = %q, want published", got.Status)
	}
	if !got.PublishedAt.Valid {
		t.Error("due post should have published_at set")
	}

	got, err = queries.GetPost(ctx, future.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Status != model.PostStatusScheduled {
		t.Errorf("future post status = %q, want scheduled", got.Status)
	}
}

func TestPublishDuePosts_LogsEvent(t *testing.T) {
	s, queries := newTestScheduler(t)
	ctx := context.Background()

	createScheduledPost(t, queries, "logged-post", time.Now().Add(-time.Minute))

	if err := s.publishDuePosts(); err != nil {
		t.Fatalf("publishDuePosts: %v", err)
	}

	n, err := queries.CountEvents(ctx, "", model.EventCategoryContent)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 1 {
		t.Errorf("content events = %d, want 1", n)
	}
}

func TestPurgeAgedRows(t *testing.T) {
	s, queries := newTestScheduler(t)
	ctx := context.Background()

	// One aged visit, one fresh.
	for _, age := range []time.Duration{-100 * 24 * time.Hour, -time.Hour} {
		err := queries.CreateVisit(ctx, store.CreateVisitParams{
			Path:      "/",
			Device:    model.DeviceDesktop,
			CreatedAt: time.Now().Add(age),
		})
		if err != nil {
			t.Fatalf("CreateVisit: %v", err)
		}
	}

	// One aged event, one fresh.
	for _, age := range []time.Duration{-200 * 24 * time.Hour, -time.Hour} {
		err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   "test",
			CreatedAt: time.Now().Add(age),
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	s.purgeAgedRows()

	visits, err := queries.CountVisitsSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("CountVisitsSince: %v", err)
	}
	if visits != 1 {
		t.Errorf("visits after purge = %d, want 1", visits)
	}

	events, err := queries.CountEvents(ctx, "", "")
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if events != 1 {
		t.Errorf("events after purge = %d, want 1", events)
	}
}

func TestPurgeAgedRows_DisabledRetention(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	queries := store.New(db)
	ctx := context.Background()

	s := New(db, nil, testutil.TestLoggerSilent(), Config{})

	err := queries.CreateVisit(ctx, store.CreateVisitParams{
		Path:      "/",
		Device:    model.DeviceDesktop,
		CreatedAt: time.Now().Add(-365 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateVisit: %v", err)
	}

	s.purgeAgedRows()

	visits, err := queries.CountVisitsSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("CountVisitsSince: %v", err)
	}
	if visits != 1 {
		t.Errorf("visits = %d, want 1 (retention disabled)", visits)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s, _ := newTestScheduler(t)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Errorf("registered jobs = %d, want 2", got)
	}
	s.Stop()
}
