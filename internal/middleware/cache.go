// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// Cache lifetimes for static files.
const (
	StaticMaxAge    = 3600     // 1 hour
	ImmutableMaxAge = 31536000 // 1 year
)

// StaticCache adds Cache-Control headers for static files.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return cacheControl("public, max-age=" + strconv.Itoa(maxAge))
}

// ImmutableCache marks responses as never changing for maxAge seconds.
// Use it only for fingerprinted assets.
func ImmutableCache(maxAge int) func(http.Handler) http.Handler {
	return cacheControl("public, max-age=" + strconv.Itoa(maxAge) + ", immutable")
}

func cacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
