// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/clacky-ai/react-router-vite-starter/internal/store"
	"github.com/clacky-ai/react-router-vite-starter/internal/testutil"
)

func TestNew(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	s := New(nil, logger, nil)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestMaintenanceJobs(t *testing.T) {
	tests := []struct {
		driver string
		want   []string
	}{
		{store.DriverSQLite, []string{"optimize", "wal_checkpoint"}},
		{"", []string{"optimize", "wal_checkpoint"}},
		{store.DriverMySQL, []string{"ping"}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			jobs := MaintenanceJobs(tt.driver)
			if len(jobs) != len(tt.want) {
				t.Fatalf("len(jobs) = %d; want %d", len(jobs), len(tt.want))
			}
			for i, name := range tt.want {
				if jobs[i].Name != name {
					t.Errorf("jobs[%d].Name = %q; want %q", i, jobs[i].Name, name)
				}
				if jobs[i].Run == nil {
					t.Errorf("jobs[%d].Run is nil", i)
				}
			}
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, testutil.TestLoggerSilent(), MaintenanceJobs(store.DriverSQLite))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	jobs := s.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("len(Jobs()) = %d; want 2", len(jobs))
	}
	for _, j := range jobs {
		if j.NextRun.IsZero() {
			t.Errorf("job %s has no next run", j.Name)
		}
		if !j.LastRun.IsZero() {
			t.Errorf("job %s ran before being triggered", j.Name)
		}
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New(nil, testutil.TestLoggerSilent(), []Job{{
		Name:     "broken",
		Schedule: "not a schedule",
		Run:      func(context.Context, *sql.DB) error { return nil },
	}})

	if err := s.Start(); err == nil {
		t.Error("Start() expected error for invalid schedule")
	}
}

func TestScheduler_TriggerSQLiteJobs(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, testutil.TestLoggerSilent(), MaintenanceJobs(store.DriverSQLite))

	for _, name := range []string{"optimize", "wal_checkpoint"} {
		if err := s.Trigger(context.Background(), name); err != nil {
			t.Errorf("Trigger(%q) error = %v", name, err)
		}
	}

	for _, j := range s.Jobs() {
		if j.LastRun.IsZero() {
			t.Errorf("job %s has no last run after trigger", j.Name)
		}
	}
}

func TestScheduler_TriggerErrors(t *testing.T) {
	boom := errors.New("boom")
	s := New(nil, testutil.TestLoggerSilent(), []Job{{
		Name:     "failing",
		Schedule: "@daily",
		Run:      func(context.Context, *sql.DB) error { return boom },
	}})

	if err := s.Trigger(context.Background(), "failing"); !errors.Is(err, boom) {
		t.Errorf("Trigger() error = %v; want wrapped boom", err)
	}
	if err := s.Trigger(context.Background(), "missing"); err == nil {
		t.Error("Trigger() expected error for unknown job")
	}
}

func TestScheduler_TriggerClosedDB(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	cleanup()

	s := New(db, testutil.TestLoggerSilent(), MaintenanceJobs(store.DriverMySQL))
	if err := s.Trigger(context.Background(), "ping"); err == nil {
		t.Error("Trigger(ping) expected error on closed database")
	}
}
