// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/starter.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/starter.db")
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverSQLite)
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 5173 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 5173)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.PostsFanoutLimit != 0 {
		t.Errorf("PostsFanoutLimit = %d, want 0", cfg.PostsFanoutLimit)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "DB_PATH", "/custom/path.db")
	setEnv(t, "HOST", "0.0.0.0")
	setEnv(t, "PORT", "3000")
	setEnv(t, "APP_ENV", "production")
	setEnv(t, "LOG_LEVEL", "debug")
	setEnv(t, "POSTS_FANOUT_LIMIT", "8")
	setEnv(t, "DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.PostsFanoutLimit != 8 {
		t.Errorf("PostsFanoutLimit = %d, want 8", cfg.PostsFanoutLimit)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown driver", "DB_DRIVER", "postgres", "DB_DRIVER"},
		{"port too high", "PORT", "70000", "PORT"},
		{"port zero", "PORT", "0", "PORT"},
		{"port not a number", "PORT", "abc", "parsing config"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"negative burst", "RATE_LIMIT_BURST", "-1", "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_DriverCaseInsensitive(t *testing.T) {
	os.Clearenv()
	setEnv(t, "DB_DRIVER", "MySQL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBDriver != DriverMySQL {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverMySQL)
	}
}

func TestDatabaseDSN(t *testing.T) {
	t.Run("sqlite uses path", func(t *testing.T) {
		cfg := Config{DBDriver: DriverSQLite, DBPath: "./data/x.db"}
		if got := cfg.DatabaseDSN(); got != "./data/x.db" {
			t.Errorf("DatabaseDSN() = %q, want %q", got, "./data/x.db")
		}
	})

	t.Run("mysql built from parts", func(t *testing.T) {
		cfg := Config{
			DBDriver:      DriverMySQL,
			MySQLHost:     "db",
			MySQLPort:     3307,
			MySQLUser:     "app",
			MySQLPassword: "s3cret",
			MySQLDatabase: "blog",
		}
		got := cfg.DatabaseDSN()
		if !strings.HasPrefix(got, "app:s3cret@tcp(db:3307)/blog?") {
			t.Errorf("DatabaseDSN() = %q", got)
		}
		if !strings.Contains(got, "parseTime=true") {
			t.Errorf("DatabaseDSN() = %q, want parseTime=true", got)
		}
	})

	t.Run("DATABASE_URL wins", func(t *testing.T) {
		cfg := Config{DBDriver: DriverMySQL, DatabaseURL: "u:p@tcp(h:1)/d", MySQLHost: "ignored"}
		if got := cfg.DatabaseDSN(); got != "u:p@tcp(h:1)/d" {
			t.Errorf("DatabaseDSN() = %q", got)
		}
	})
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		name        string
		dbPath      string
		databaseURL string
		want        string
	}{
		{"db path only", "./data/starter.db", "", "./data/starter.db"},
		{"plain url wins", "./data/starter.db", "/var/lib/app.db", "/var/lib/app.db"},
		{"file uri", "", "file:./data/app.db?mode=rwc", "./data/app.db"},
		{"sqlite scheme", "", "sqlite://./data/app.db", "./data/app.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{DBDriver: DriverSQLite, DBPath: tt.dbPath, DatabaseURL: tt.databaseURL}
			if got := cfg.SQLitePath(); got != tt.want {
				t.Errorf("SQLitePath() = %q, want %q", got, tt.want)
			}
			if got := cfg.DatabaseDSN(); got != tt.want {
				t.Errorf("DatabaseDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedactedDSN(t *testing.T) {
	cfg := Config{DBDriver: DriverMySQL, DatabaseURL: "app:s3cret@tcp(db:3306)/blog"}

	got := cfg.RedactedDSN()
	if strings.Contains(got, "s3cret") {
		t.Errorf("RedactedDSN() = %q leaks the password", got)
	}
	if !strings.Contains(got, "db:3306") {
		t.Errorf("RedactedDSN() = %q, want host kept", got)
	}

	sqlite := Config{DBDriver: DriverSQLite, DBPath: "./data/starter.db"}
	if got := sqlite.RedactedDSN(); got != "./data/starter.db" {
		t.Errorf("RedactedDSN() = %q for sqlite", got)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (Config{LogLevel: tt.level}).SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
