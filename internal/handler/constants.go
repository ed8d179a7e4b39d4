// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the home page.
	RouteRoot = "/"
	// RouteAbout is the about page.
	RouteAbout = "/about"
	// RouteContact is the contact page.
	RouteContact = "/contact"
	// RoutePosts is the published post list.
	RoutePosts = "/posts"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteHealth is the health summary endpoint.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"

	// RouteStatic serves embedded static files.
	RouteStatic = "/static"
	// RouteStaticAssets serves fingerprinted, immutable assets.
	RouteStaticAssets = "/static/assets"
)

// Health states reported by the health endpoints.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// Template names under web/templates/pages.
const (
	templateHome     = "home"
	templateAbout    = "about"
	templateContact  = "contact"
	templatePosts    = "posts"
	templatePost     = "post"
	templateNotFound = "404"
	templateError    = "error"
)

// siteName is shown in page titles and the header.
const siteName = "React Router App"
