// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic database maintenance.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/clacky-ai/react-router-vite-starter/internal/store"
)

// jobTimeout bounds a single job run.
const jobTimeout = time.Minute

// Job is a named maintenance task on a cron schedule.
type Job struct {
	Name        string
	Description string
	Schedule    string
	Run         func(ctx context.Context, db *sql.DB) error
}

// JobInfo is the public view of a scheduled job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

// MaintenanceJobs returns the jobs for the given database driver.
func MaintenanceJobs(driver string) []Job {
	if driver == store.DriverMySQL {
		return []Job{
			{
				Name:        "ping",
				Description: "Keep the connection pool warm",
				Schedule:    "*/5 * * * *",
				Run: func(ctx context.Context, db *sql.DB) error {
					return db.PingContext(ctx)
				},
			},
		}
	}

	return []Job{
		{
			Name:        "optimize",
			Description: "Refresh query planner statistics",
			Schedule:    "@hourly",
			Run:         execJob("PRAGMA optimize"),
		},
		{
			Name:        "wal_checkpoint",
			Description: "Checkpoint and truncate the write-ahead log",
			Schedule:    "0 3 * * *",
			Run:         execJob("PRAGMA wal_checkpoint(TRUNCATE)"),
		},
	}
}

func execJob(stmt string) func(ctx context.Context, db *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, stmt)
		return err
	}
}

// Scheduler runs maintenance jobs against the application database.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
	jobs   []Job

	mu      sync.Mutex
	entries map[string]cron.EntryID
	lastRun map[string]time.Time
}

// New creates a new scheduler instance with the given jobs.
func New(db *sql.DB, logger *slog.Logger, jobs []Job) *Scheduler {
	return &Scheduler{
		db:      db,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		jobs:    jobs,
		entries: make(map[string]cron.EntryID, len(jobs)),
		lastRun: make(map[string]time.Time, len(jobs)),
	}
}

// Start schedules every job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		id, err := s.cron.AddFunc(job.Schedule, func() {
			_ = s.run(context.Background(), job)
		})
		if err != nil {
			return fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
		s.entries[job.Name] = id
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

// Trigger runs the named job immediately.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			return s.run(ctx, job)
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

// Jobs returns the scheduled jobs sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		info := JobInfo{
			Name:        job.Name,
			Description: job.Description,
			Schedule:    job.Schedule,
			LastRun:     s.lastRun[job.Name],
		}
		if id, ok := s.entries[job.Name]; ok {
			info.NextRun = s.cron.Entry(id).Next
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx, s.db)

	s.mu.Lock()
	s.lastRun[job.Name] = start
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("maintenance job failed", "job", job.Name, "error", err)
		return fmt.Errorf("running %s: %w", job.Name, err)
	}
	s.logger.Debug("maintenance job finished", "job", job.Name, "duration", time.Since(start))
	return nil
}
