// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background cron jobs: publishing scheduled
// posts and purging aged analytics and event log rows.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/store"
)

// Config holds retention settings for the purge jobs.
type Config struct {
	// VisitRetentionDays is how long visit rows are kept. Zero disables
	// the purge.
	VisitRetentionDays int

	// EventRetentionDays is how long event log rows are kept. Zero
	// disables the purge.
	EventRetentionDays int
}

// Scheduler owns the cron instance and the job implementations.
type Scheduler struct {
	queries *store.Queries
	events  *service.EventService
	cron    *cron.Cron
	logger  *slog.Logger
	cfg     Config
}

// New creates a scheduler. The event service may be nil, in which case jobs
// skip event logging.
func New(db *sql.DB, events *service.EventService, logger *slog.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		events:  events,
		cron:    cron.New(),
		logger:  logger,
		cfg:     cfg,
	}
}

// Start registers the jobs and begins the cron loop. Scheduled posts are
// checked every minute; retention purges run nightly.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.publishDuePosts(); err != nil {
			s.logger.Error("failed to publish scheduled posts", "error", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc("30 3 * * *", func() {
		s.purgeAgedRows()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// publishDuePosts promotes scheduled posts whose time has arrived.
func (s *Scheduler) publishDuePosts() error {
	ctx := context.Background()
	now := time.Now()

	posts, err := s.queries.ListScheduledPostsDue(ctx, now)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	s.logger.Info("publishing scheduled posts", "count", len(posts))

	for _, post := range posts {
		if err := s.queries.PublishScheduledPost(ctx, post.ID, now); err != nil {
			s.logger.Error("failed to publish scheduled post",
				"post_id", post.ID,
				"slug", post.Slug,
				"error", err,
			)
			continue
		}

		s.logger.Info("published scheduled post",
			"post_id", post.ID,
			"slug", post.Slug,
			"scheduled_at", post.ScheduledAt.Time,
		)

		if s.events != nil {
			_ = s.events.LogContentEvent(ctx, model.EventLevelInfo,
				"Scheduled post published: "+post.Slug, nil,
				map[string]any{
					"post_id":      post.ID,
					"slug":         post.Slug,
					"scheduled_at": post.ScheduledAt.Time.Format(time.RFC3339),
				})
		}
	}

	return nil
}

// purgeAgedRows trims visits and events past their retention windows.
func (s *Scheduler) purgeAgedRows() {
	ctx := context.Background()
	now := time.Now()

	if s.cfg.VisitRetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -s.cfg.VisitRetentionDays)
		purged, err := s.queries.PurgeVisitsBefore(ctx, cutoff)
		if err != nil {
			s.logger.Error("failed to purge visits", "error", err)
		} else if purged > 0 {
			s.logger.Info("purged aged visits", "count", purged, "cutoff", cutoff)
		}
	}

	if s.cfg.EventRetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -s.cfg.EventRetentionDays)
		purged, err := s.queries.PurgeEventsBefore(ctx, cutoff)
		if err != nil {
			s.logger.Error("failed to purge events", "error", err)
		} else if purged > 0 {
			s.logger.Info("purged aged events", "count", purged, "cutoff", cutoff)
		}
	}
}
