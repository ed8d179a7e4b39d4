// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clacky-ai/react-router-vite-starter/internal/config"
)

func TestOpenDatabaseUsesDatabaseURLForSQLite(t *testing.T) {
	dir := t.TempDir()
	urlPath := filepath.Join(dir, "from-url", "app.db")
	dbPath := filepath.Join(dir, "from-path", "app.db")

	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DBPath:      dbPath,
		DatabaseURL: "file:" + urlPath,
	}

	db, err := openDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(urlPath)
	assert.NoError(t, err, "database should be created at the DATABASE_URL path")
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "DB_PATH should be ignored when DATABASE_URL is set")
}

func TestOpenDatabaseDBPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := openDatabase(&config.Config{DBDriver: config.DriverSQLite, DBPath: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&n))
	assert.Equal(t, 0, n)
}
