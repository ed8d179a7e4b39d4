// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application settings from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerHost string `env:"HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORT" envDefault:"5173"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"LOG_FILE"` // Optional rotating log file

	// Database configuration
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH" envDefault:"./data/starter.db"`
	DatabaseURL string `env:"DATABASE_URL"` // Overrides the driver-specific DSN

	MySQLHost     string `env:"MYSQL_HOST" envDefault:"127.0.0.1"`
	MySQLPort     int    `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLUser     string `env:"MYSQL_USER" envDefault:"root"`
	MySQLPassword string `env:"MYSQL_PASSWORD"`
	MySQLDatabase string `env:"MYSQL_DATABASE" envDefault:"starter"`

	// PostsFanoutLimit caps concurrent category lookups per posts request.
	// Zero means the database pool size.
	PostsFanoutLimit int `env:"POSTS_FANOUT_LIMIT" envDefault:"0"`

	// Rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	DoSeed bool `env:"DO_SEED" envDefault:"false"` // Enable demo data seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// DatabaseDSN returns the connection string for the configured driver.
// For sqlite it is the file path. DATABASE_URL wins over DB_PATH and MYSQL_*.
func (c Config) DatabaseDSN() string {
	if c.DBDriver != DriverMySQL {
		return c.SQLitePath()
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.MySQLHost, strconv.Itoa(c.MySQLPort))
	mc.User = c.MySQLUser
	mc.Passwd = c.MySQLPassword
	mc.DBName = c.MySQLDatabase
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// SQLitePath returns the SQLite file path. A DATABASE_URL such as
// "file:./data/app.db?mode=rwc" is reduced to its path; DB_PATH is the fallback.
func (c Config) SQLitePath() string {
	if c.DatabaseURL == "" {
		return c.DBPath
	}
	path := strings.TrimPrefix(c.DatabaseURL, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	path, _, _ = strings.Cut(path, "?")
	return path
}

// RedactedDSN returns DatabaseDSN with any password masked, for logging.
func (c Config) RedactedDSN() string {
	dsn := c.DatabaseDSN()
	if c.DBDriver != DriverMySQL {
		return dsn
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "<invalid dsn>"
	}
	if mc.Passwd != "" {
		mc.Passwd = "xxxxx"
	}
	return mc.FormatDSN()
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverMySQL {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverMySQL, cfg.DBDriver)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if !isValidLogLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("LOG_LEVEL must be one of %s, got %q",
			strings.Join(validLogLevels, ", "), cfg.LogLevel)
	}

	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}

	if cfg.DBDriver == DriverSQLite && cfg.DBPath == "" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DB_PATH is required for the sqlite driver")
	}

	return cfg, nil
}

func isValidLogLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range validLogLevels {
		if l == level {
			return true
		}
	}
	return false
}
