// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/clacky-ai/react-router-vite-starter/internal/middleware"
	"github.com/clacky-ai/react-router-vite-starter/internal/render"
	"github.com/clacky-ai/react-router-vite-starter/internal/service"
	"github.com/clacky-ai/react-router-vite-starter/internal/testutil"
	"github.com/clacky-ai/react-router-vite-starter/web"
)

func newTestFrontendHandler(t *testing.T, isDev bool) *FrontendHandler {
	t.Helper()

	renderer, err := render.New(render.Config{TemplatesFS: web.TemplatesFS()})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return NewFrontendHandler(renderer, service.NewMenuService(), testutil.TestLoggerSilent(), isDev)
}

// newTestRouter wires the page handlers the way cmd/starter does, minus the
// ambient middleware.
func newTestRouter(t *testing.T, db *sql.DB, isDev bool) http.Handler {
	t.Helper()

	frontend := newTestFrontendHandler(t, isDev)
	posts := NewPostsHandler(frontend, service.NewPostService(service.PostServiceConfig{}))

	r := chi.NewRouter()
	r.Use(middleware.Device)
	if db != nil {
		r.Use(middleware.Database(db))
	}
	r.Get(RouteRoot, frontend.Home)
	r.Get(RouteAbout, frontend.About)
	r.Get(RouteContact, frontend.Contact)
	r.Get(RoutePosts, posts.List)
	r.Get(RoutePosts+RouteParamID, posts.Show)
	r.NotFound(frontend.NotFound)
	return r
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, u := range unwanted {
		if strings.Contains(body, u) {
			t.Errorf("body unexpectedly contains %q", u)
		}
	}
}
