// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clacky-ai/react-router-vite-starter/internal/config"
	"github.com/clacky-ai/react-router-vite-starter/internal/handler"
	"github.com/clacky-ai/react-router-vite-starter/internal/middleware"
	"github.com/clacky-ai/react-router-vite-starter/internal/render"
	"github.com/clacky-ai/react-router-vite-starter/internal/service"
	"github.com/clacky-ai/react-router-vite-starter/internal/version"
	"github.com/clacky-ai/react-router-vite-starter/web"
)

type routerDeps struct {
	cfg         *config.Config
	db          *sql.DB
	renderer    *render.Renderer
	logger      *slog.Logger
	version     *version.Info
	fanoutLimit int
}

// newRouter builds the middleware stack and registers every route.
func newRouter(d routerDeps) http.Handler {
	isDev := d.cfg.IsDevelopment()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)

	securityConfig := middleware.DefaultSecurityHeadersConfig(isDev)
	securityConfig.ExcludePaths = []string{handler.RouteHealth}
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(middleware.NewRateLimiter(d.cfg.RateLimitRPS, d.cfg.RateLimitBurst).Middleware())
	r.Use(middleware.RequestPath)
	r.Use(middleware.Device)
	r.Use(middleware.Database(d.db))

	healthHandler := handler.NewHealthHandler(d.db, d.cfg.DBDriver, d.version, isDev)
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	staticFS := http.FileServer(http.FS(web.StaticFS()))
	r.With(middleware.ImmutableCache(middleware.ImmutableMaxAge)).
		Handle(handler.RouteStaticAssets+"/*", http.StripPrefix(handler.RouteStatic, staticFS))
	r.With(middleware.StaticCache(middleware.StaticMaxAge)).
		Handle(handler.RouteStatic+"/*", http.StripPrefix(handler.RouteStatic, staticFS))
	r.With(middleware.StaticCache(middleware.StaticMaxAge)).
		Handle("/robots.txt", staticFS)

	frontendHandler := handler.NewFrontendHandler(d.renderer, service.NewMenuService(), d.logger, isDev)
	postsHandler := handler.NewPostsHandler(frontendHandler, service.NewPostService(service.PostServiceConfig{
		FanoutLimit: d.fanoutLimit,
	}))

	r.Get(handler.RouteRoot, frontendHandler.Home)
	r.Get(handler.RouteAbout, frontendHandler.About)
	r.Get(handler.RouteContact, frontendHandler.Contact)
	r.Get(handler.RoutePosts, postsHandler.List)
	r.Get(handler.RoutePosts+handler.RouteParamID, postsHandler.Show)

	r.NotFound(frontendHandler.NotFound)

	return r
}
