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

	"github.com/joho/godotenv"

	"github.com/clacky-ai/react-router-vite-starter/internal/config"
	"github.com/clacky-ai/react-router-vite-starter/internal/logging"
	"github.com/clacky-ai/react-router-vite-starter/internal/render"
	"github.com/clacky-ai/react-router-vite-starter/internal/scheduler"
	"github.com/clacky-ai/react-router-vite-starter/internal/store"
	"github.com/clacky-ai/react-router-vite-starter/internal/version"
	"github.com/clacky-ai/react-router-vite-starter/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "starter - server-rendered React Router starter site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APP_ENV                development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOST, PORT             Listen address (default: localhost:5173)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DB_DRIVER              sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DB_PATH                SQLite database path (default: ./data/starter.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DATABASE_URL           MySQL DSN, overrides MYSQL_* (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POSTS_FANOUT_LIMIT     Concurrent category lookups (default: pool size)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOG_LEVEL, LOG_FILE    Logging level and optional rotating file\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DO_SEED                Seed demo content into an empty database\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("starter %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger, logCloser := logging.NewLogger(cfg)
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sched := scheduler.New(db, logger, scheduler.MaintenanceJobs(cfg.DBDriver))
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	renderer, err := render.New(render.Config{
		TemplatesFS: web.TemplatesFS(),
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	r := newRouter(routerDeps{
		cfg:         cfg,
		db:          db,
		renderer:    renderer,
		logger:      logger,
		version:     versionInfo,
		fanoutLimit: fanoutLimit(cfg.PostsFanoutLimit),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openDatabase opens the configured database and applies migrations.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	opts := store.Options{Driver: cfg.DBDriver}
	if cfg.DBDriver == config.DriverMySQL {
		opts.DSN = cfg.DatabaseDSN()
	} else {
		opts.Path = cfg.SQLitePath()
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver, "dsn", cfg.RedactedDSN())
	db, err := store.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")
	return db, nil
}

// fanoutLimit resolves POSTS_FANOUT_LIMIT. Zero means one lookup per pooled connection.
func fanoutLimit(configured int) int {
	if configured > 0 {
		return configured
	}
	return store.DefaultDBConfig().MaxOpenConns
}
