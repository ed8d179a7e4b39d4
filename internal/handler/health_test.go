// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clacky-ai/react-router-vite-starter/internal/store"
	"github.com/clacky-ai/react-router-vite-starter/internal/testutil"
	"github.com/clacky-ai/react-router-vite-starter/internal/version"
)

func TestHealth(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db, store.DriverSQLite, &version.Info{Version: "v1.2.3"}, false)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, RouteHealth+"?verbose=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, statusHealthy, status.Status)
	assert.Equal(t, "v1.2.3", status.Version)
	assert.Equal(t, statusHealthy, status.Checks["database"].Status)
	assert.Contains(t, status.Checks["database"].Message, "sqlite")
	assert.Nil(t, status.System, "system info requires a verbose handler")
}

func TestHealthVerbose(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db, store.DriverSQLite, nil, true)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, RouteHealth+"?verbose=true", nil))

	var status HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "dev", status.Version)
	require.NotNil(t, status.System)
	assert.NotEmpty(t, status.System.GoVersion)
	assert.NotEmpty(t, status.System.MemAlloc)
	assert.Positive(t, status.System.NumCPU)

	w = httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))
	status = HealthStatus{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Nil(t, status.System)
}

func TestHealthDatabaseDown(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	cleanup()

	h := NewHealthHandler(db, store.DriverSQLite, nil, true)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var status HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, statusDegraded, status.Status)
	assert.Equal(t, statusUnhealthy, status.Checks["database"].Status)
	assert.NotEmpty(t, status.Checks["database"].Message)
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil, store.DriverSQLite, nil, false)

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, RouteHealthLive, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	db, cleanup := testutil.TestDB(t)

	t.Run("ready", func(t *testing.T) {
		h := NewHealthHandler(db, store.DriverSQLite, nil, false)
		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	cleanup()

	t.Run("not ready hides detail", func(t *testing.T) {
		h := NewHealthHandler(db, store.DriverSQLite, nil, false)
		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready"}`, w.Body.String())
	})

	t.Run("not ready verbose", func(t *testing.T) {
		h := NewHealthHandler(db, store.DriverSQLite, nil, true)
		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "not_ready", resp["status"])
		assert.Contains(t, resp["message"], "closed")
	})
}
