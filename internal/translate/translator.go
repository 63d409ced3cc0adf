// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// Settings is the configuration snapshot source the orchestrator reads. A
// fresh snapshot is taken at scheduling time and again at execution time;
// configuration may legitimately change between the two.
type Settings interface {
	Get(ctx context.Context) (model.SiteSettings, error)
	TargetLanguages(ctx context.Context) ([]model.Language, error)
}

// Job is one deferred translation unit: it carries only primitive
// identifiers, never a live entity, because the entity is re-fetched at
// execution time to guarantee it reflects committed state.
type Job struct {
	EntityType     string
	EntityID       int64
	SourceLanguage string
}

// Config holds translator worker configuration.
type Config struct {
	Workers   int
	QueueSize int
}

// DefaultConfig returns default translator configuration.
func DefaultConfig() Config {
	return Config{Workers: 2, QueueSize: 100}
}

// Translator is the auto-translation orchestrator: Schedule gates and
// enqueues jobs after content saves, and background workers fan each job out
// across every active target language.
type Translator struct {
	queries  *store.Queries
	settings Settings
	logger   *slog.Logger
	queue    chan Job
	workers  int
	wg       sync.WaitGroup
	done     chan struct{}
	mu       sync.RWMutex
	running  bool

	// newService is swapped in tests to observe service construction.
	newService func(model.SiteSettings) (*Service, error)
}

// NewTranslator creates a translator backed by the given database.
func NewTranslator(db *sql.DB, settings Settings, logger *slog.Logger, cfg Config) *Translator {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		queries:    store.New(db),
		settings:   settings,
		logger:     logger,
		queue:      make(chan Job, cfg.QueueSize),
		workers:    cfg.Workers,
		done:       make(chan struct{}),
		newService: NewServiceFromSettings,
	}
}

// Start launches the worker goroutines.
func (t *Translator) Start(ctx context.Context) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.mu.Unlock()

	t.logger.Info("starting translator", "workers", t.workers)
	for i := 0; i < t.workers; i++ {
		t.wg.Add(1)
		go t.worker(ctx, i)
	}
}

// Stop stops the translator and waits for in-flight jobs to finish.
func (t *Translator) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.mu.Unlock()

	close(t.done)
	t.wg.Wait()
	t.logger.Info("translator stopped")
}

func (t *Translator) worker(ctx context.Context, id int) {
	defer t.wg.Done()

	for {
		select {
		case <-t.done:
			return
		case <-ctx.Done():
			return
		case job := <-t.queue:
			t.process(ctx, job)
		}
	}
}

// process runs one job, containing any panic so a single bad job cannot kill
// the worker.
func (t *Translator) process(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("translation job panicked",
				"entity_type", job.EntityType,
				"entity_id", job.EntityID,
				"panic", r)
		}
	}()

	if err := t.Run(ctx, job); err != nil {
		t.logger.Error("translation job failed",
			"entity_type", job.EntityType,
			"entity_id", job.EntityID,
			"error", err)
	}
}

// Schedule evaluates the decision gate for a just-saved language field set
// and enqueues a job when it passes. Call it only after the save has
// committed. Scheduling is best-effort and never surfaces an error to the
// caller: translation is an asynchronous enhancement, not part of the save.
//
// The gate: the entity type must be registered, the entity must have a real
// primary key, auto-translation must be enabled, and the saved language must
// equal the configured default language. The last check is the loop breaker —
// without it, translations written by the pipeline would schedule further
// translation of themselves, cascading indefinitely.
func (t *Translator) Schedule(ctx context.Context, entityType string, entityID int64, savedLanguage string) {
	if !Registered(entityType) || entityID == 0 {
		return
	}

	cfg, err := t.settings.Get(ctx)
	if err != nil {
		t.logger.Error("loading settings for translation gate", "error", err)
		return
	}
	if !cfg.AutoTranslateEnabled {
		return
	}
	if savedLanguage != cfg.DefaultLanguage {
		return
	}

	t.mu.RLock()
	running := t.running
	t.mu.RUnlock()

	job := Job{EntityType: entityType, EntityID: entityID, SourceLanguage: savedLanguage}
	if !running {
		t.logger.Warn("translator not running, dropping job",
			"entity_type", entityType, "entity_id", entityID)
		return
	}

	select {
	case t.queue <- job:
		t.logger.Debug("translation job queued",
			"entity_type", entityType, "entity_id", entityID)
	default:
		t.logger.Warn("translation queue full, dropping job",
			"entity_type", entityType, "entity_id", entityID)
	}
}

// Run executes one job synchronously: it re-validates configuration, gathers
// source-language field values, and translates them into every target
// language independently. Silent-abort conditions (entity deleted, config
// disabled mid-flight, no source content) exit without writing anything;
// they are distinct from per-language failures, which write failure records.
func (t *Translator) Run(ctx context.Context, job Job) error {
	ops, ok := registry[job.EntityType]
	if !ok {
		return nil
	}

	cfg, err := t.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !cfg.AutoTranslateEnabled {
		return nil
	}
	if job.SourceLanguage != cfg.DefaultLanguage {
		return nil
	}

	if err := ops.exists(ctx, t.queries, job.EntityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // deleted before the job ran
		}
		return err
	}

	source, err := ops.source(ctx, t.queries, job.EntityID, job.SourceLanguage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // no source field set yet
		}
		return err
	}
	for name, value := range source {
		if value == "" {
			delete(source, name)
		}
	}
	if len(source) == 0 {
		return nil // nothing to translate
	}

	// A configuration problem is fatal for the whole job, not per-language:
	// no service can be built, so no failure records are written.
	svc, err := t.newService(cfg)
	if err != nil {
		t.logger.Warn("cannot build translation service",
			"provider", cfg.TranslationProvider, "error", err)
		return nil
	}

	targets, err := t.settings.TargetLanguages(ctx)
	if err != nil {
		return err
	}

	for _, lang := range targets {
		if lang.Code == job.SourceLanguage {
			continue
		}
		t.translateLanguage(ctx, svc, ops, job, lang.Code, source)
	}
	return nil
}

// translateLanguage translates all source fields into one target language.
// The attempt is all-or-nothing: the field-set upsert happens only after
// every field translated, and the first failure writes a failure record and
// abandons the language without touching its existing field values.
func (t *Translator) translateLanguage(ctx context.Context, svc *Service, ops entityOps, job Job, target string, source map[string]string) {
	// Records with auto_generated=false are never overwritten automatically.
	// That covers both human-owned translations and prior failures, which
	// wait for an admin to retry or take over.
	rec, err := t.queries.GetTranslationRecord(ctx, job.EntityType, job.EntityID, target)
	if err == nil && rec.IsManual() {
		t.logger.Debug("skipping language not owned by the pipeline",
			"entity_type", job.EntityType, "entity_id", job.EntityID, "language", target)
		return
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		t.logger.Error("loading translation record",
			"entity_type", job.EntityType, "entity_id", job.EntityID,
			"language", target, "error", err)
		return
	}

	translated := make(map[string]string, len(source))
	var totalMs int64
	for _, field := range ops.fields {
		text, ok := source[field.Name]
		if !ok {
			continue
		}
		res, err := svc.Translate(ctx, text, job.SourceLanguage, target, field.Format)
		if err != nil {
			t.recordFailure(ctx, job, target, err)
			return
		}
		translated[field.Name] = res.Text
		totalMs += res.DurationMs
	}

	if err := ops.upsert(ctx, t.queries, job.EntityID, target, translated); err != nil {
		t.recordFailure(ctx, job, target, err)
		return
	}

	err = t.queries.UpsertTranslationRecordSuccess(ctx, store.UpsertTranslationRecordSuccessParams{
		EntityType:     job.EntityType,
		EntityID:       job.EntityID,
		LanguageCode:   target,
		SourceLanguage: job.SourceLanguage,
		Provider:       svc.Provider(),
		DurationMs:     totalMs,
		Now:            time.Now(),
	})
	if err != nil {
		t.logger.Error("recording translation success",
			"entity_type", job.EntityType, "entity_id", job.EntityID,
			"language", target, "error", err)
		return
	}

	t.logger.Info("translated",
		"entity_type", job.EntityType,
		"entity_id", job.EntityID,
		"language", target,
		"fields", len(translated),
		"duration_ms", totalMs)
}

func (t *Translator) recordFailure(ctx context.Context, job Job, target string, cause error) {
	t.logger.Warn("translation failed",
		"entity_type", job.EntityType,
		"entity_id", job.EntityID,
		"language", target,
		"error", cause)

	err := t.queries.UpsertTranslationRecordFailure(ctx, store.UpsertTranslationRecordFailureParams{
		EntityType:     job.EntityType,
		EntityID:       job.EntityID,
		LanguageCode:   target,
		SourceLanguage: job.SourceLanguage,
		ErrorMessage:   cause.Error(),
		Now:            time.Now(),
	})
	if err != nil {
		t.logger.Error("recording translation failure",
			"entity_type", job.EntityType, "entity_id", job.EntityID,
			"language", target, "error", err)
	}
}
