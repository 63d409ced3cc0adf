// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/handler"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/scheduler"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/session"
	"github.com/olegiv/folio-go/internal/settings"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/translate"
	"github.com/olegiv/folio-go/internal/version"
)

// Injected at build time via ldflags.
var (
	appVersion   = ""
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - personal portfolio server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH          SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_BASE_URL         Public origin for sitemap links (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_UPLOADS_DIR      Media upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_GEOIP_DB_PATH    GeoLite2-Country.mmdb path for visit stats (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("folio %s\n", info.Resolve())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is only read in development setups; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.Resolve()
	slog.Info("starting folio", "version", info.String(), "env", cfg.Env)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// WARN and ERROR log records also land in the event log table.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	queries := store.New(db)
	site := settings.NewService(db)
	languages := cache.NewLanguageCache(queries)
	events := service.NewEventService(db)

	sessionManager := session.New(db, cfg.IsDevelopment())

	// Public response cache: Redis when configured, in-process otherwise.
	cacheConfig := cache.CacheConfig{
		Type:            "memory",
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}
	if cfg.UseRedisCache() {
		cacheConfig.Type = "redis"
	}
	contentCache, err := cache.NewCache(cacheConfig)
	if err != nil {
		slog.Warn("redis unavailable, using in-memory cache",
			"url", cache.SanitizeRedisURL(cfg.RedisURL), "error", err)
		contentCache, _ = cache.NewCache(cache.CacheConfig{
			Type:            "memory",
			DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
			MaxSize:         cfg.CacheMaxSize,
			CleanupInterval: time.Minute,
		})
	}
	defer func() { _ = contentCache.Close() }()
	slog.Info("content cache initialized", "backend", cacheConfig.Type)

	geo := geoip.NewLookup()
	if err := geo.Init(cfg.GeoIPDBPath); err != nil {
		slog.Warn("geoip disabled", "error", err)
	}
	defer func() { _ = geo.Close() }()
	if geo.IsEnabled() {
		slog.Info("geoip country lookups enabled", "path", cfg.GeoIPDBPath)
		go reloadGeoIPDaily(geo)
	}

	translator := translate.NewTranslator(db, site, logger, translate.Config{
		Workers:   cfg.TranslateWorkers,
		QueueSize: cfg.TranslateQueueSize,
	})
	translator.Start(ctx)
	defer translator.Stop()

	sched := scheduler.New(db, events, logger, scheduler.Config{
		VisitRetentionDays: cfg.VisitRetentionDays,
		EventRetentionDays: cfg.EventRetentionDays,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	media := service.NewMediaService(cfg.UploadsDir)

	h := handler.New(handler.Config{
		DB:         db,
		Sessions:   sessionManager,
		Site:       site,
		Languages:  languages,
		Translator: translator,
		Events:     events,
		Media:      media,
		Content:    contentCache,
		Logger:     logger,
		BaseURL:    cfg.BaseURL,
		IsDev:      cfg.IsDevelopment(),
	})

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	contactLimiter := middleware.NewIPRateLimiter(0.2, 3)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.Compress(1024))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.SkipCSRF("/api/contact"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.LoadUser(sessionManager, db))

	r.Get("/healthz", h.Healthz)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/.well-known/security.txt", h.SecurityTxt)

	// Public API: language-negotiated, visit-tracked.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Language(languages, site))
		r.Use(middleware.TrackVisits(db, geo))

		r.Get("/api/languages", h.PublicListLanguages)
		r.Get("/api/profile", h.PublicProfile)
		r.Get("/api/projects", h.PublicListProjects)
		r.Get("/api/projects/{slug}", h.PublicGetProject)
		r.Get("/api/posts", h.PublicListPosts)
		r.Get("/api/posts/{slug}", h.PublicGetPost)
		r.Get("/api/cv", h.PublicCV)

		r.With(contactLimiter.Middleware()).Post("/api/contact", h.SubmitContact)
	})

	r.With(loginProtection.Middleware()).Post("/api/admin/auth/login", h.Login(loginProtection))

	// Admin API: authenticated session required, content management
	// additionally gated on the admin role.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.CurrentUser)
		r.Put("/auth/password", h.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/profile", h.AdminGetProfile)
			r.Put("/profile", h.AdminSaveProfile)

			r.Get("/projects", h.AdminListProjects)
			r.Post("/projects", h.AdminCreateProject)
			r.Get("/projects/{id}", h.AdminGetProject)
			r.Put("/projects/{id}", h.AdminUpdateProject)
			r.Delete("/projects/{id}", h.AdminDeleteProject)

			r.Get("/posts", h.AdminListPosts)
			r.Post("/posts", h.AdminCreatePost)
			r.Get("/posts/{id}", h.AdminGetPost)
			r.Put("/posts/{id}", h.AdminUpdatePost)
			r.Delete("/posts/{id}", h.AdminDeletePost)

			r.Get("/cv/experiences", h.AdminListExperiences)
			r.Post("/cv/experiences", h.AdminCreateExperience)
			r.Put("/cv/experiences/{id}", h.AdminUpdateExperience)
			r.Delete("/cv/experiences/{id}", h.AdminDeleteExperience)

			r.Get("/cv/educations", h.AdminListEducations)
			r.Post("/cv/educations", h.AdminCreateEducation)
			r.Put("/cv/educations/{id}", h.AdminUpdateEducation)
			r.Delete("/cv/educations/{id}", h.AdminDeleteEducation)

			r.Get("/cv/skills", h.AdminListSkills)
			r.Post("/cv/skills", h.AdminCreateSkill)
			r.Put("/cv/skills/{id}", h.AdminUpdateSkill)
			r.Delete("/cv/skills/{id}", h.AdminDeleteSkill)

			r.Get("/languages", h.AdminListLanguages)
			r.Post("/languages", h.AdminCreateLanguage)
			r.Put("/languages/{id}", h.AdminUpdateLanguage)
			r.Delete("/languages/{id}", h.AdminDeleteLanguage)

			r.Get("/settings", h.AdminGetSettings)
			r.Put("/settings", h.AdminUpdateSettings)

			r.Get("/translations/{entityType}/status", h.AdminTranslationStatus)
			r.Post("/translations/{entityType}/{id}/retry", h.AdminRetryTranslation)
			r.Delete("/translations/{entityType}/{id}/{lang}", h.AdminClearTranslationRecord)

			r.Get("/contacts", h.AdminListContacts)
			r.Post("/contacts/{id}/read", h.AdminMarkContactRead)
			r.Delete("/contacts/{id}", h.AdminDeleteContact)

			r.Get("/events", h.AdminListEvents)
			r.Get("/stats", h.AdminStats)

			r.Post("/media", h.AdminUploadMedia)
			r.Delete("/media/{uuid}", h.AdminDeleteMedia)
		})
	})

	// Uploaded media. Filenames are UUID-scoped, so clients may cache
	// aggressively.
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.With(middleware.StaticCache(24 * time.Hour)).Get("/uploads/*", uploads.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("listening", "addr", cfg.ServerAddr(), "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// reloadGeoIPDaily re-opens the GeoIP database once a day so refreshed
// GeoLite downloads take effect without a restart.
func reloadGeoIPDaily(geo *geoip.Lookup) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := geo.Reload(); err != nil {
			slog.Warn("geoip reload failed", "error", err)
		}
	}
}
