// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clacky-ai/react-router-vite-starter/internal/config"
	"github.com/clacky-ai/react-router-vite-starter/internal/middleware"
)

func TestContextHandler_AddsRequestAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo)

	var handlerCtx context.Context
	h := chimw.RequestID(middleware.RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCtx = r.Context()
		logger.InfoContext(r.Context(), "handling")
	})))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "msg=handling") {
		t.Fatalf("output missing message: %q", out)
	}
	if !strings.Contains(out, "request_id="+chimw.GetReqID(handlerCtx)) {
		t.Errorf("output missing request_id: %q", out)
	}
	if !strings.Contains(out, "path=/posts") {
		t.Errorf("output missing path: %q", out)
	}
}

func TestContextHandler_PlainContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo)

	logger.Info("startup", "port", 5173)

	out := buf.String()
	if strings.Contains(out, "request_id=") || strings.Contains(out, "path=") {
		t.Errorf("unexpected request attrs outside a request: %q", out)
	}
	if !strings.Contains(out, "port=5173") {
		t.Errorf("output missing attr: %q", out)
	}
}

func TestContextHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo).With("component", "scheduler").WithGroup("job")

	logger.Info("ran", "name", "optimize")

	out := buf.String()
	if !strings.Contains(out, "component=scheduler") {
		t.Errorf("output missing With attr: %q", out)
	}
	if !strings.Contains(out, "job.name=optimize") {
		t.Errorf("output missing grouped attr: %q", out)
	}
}

func TestContextHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewLogger_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starter.log")

	logger, closer := NewLogger(&config.Config{LogLevel: "info", LogFile: path})
	logger.Info("written to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestNewLogger_NoFile(t *testing.T) {
	logger, closer := NewLogger(&config.Config{LogLevel: "error"})
	if logger == nil {
		t.Fatal("NewLogger returned nil logger")
	}
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled at error level")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
