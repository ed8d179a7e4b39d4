// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// StripTrailingSlash redirects URLs with trailing slashes to their
// non-trailing equivalents. GET and HEAD get a 301, other methods a 308
// so the body is resent. The root path "/" is left alone.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" || !strings.HasSuffix(path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		newURL := strings.TrimRight(path, "/")
		if newURL == "" {
			newURL = "/"
		}
		// Avoid emitting a protocol-relative URL
		if strings.HasPrefix(newURL, "//") {
			newURL = "/" + strings.TrimLeft(newURL, "/")
		}
		if r.URL.RawQuery != "" {
			newURL += "?" + r.URL.RawQuery
		}

		code := http.StatusMovedPermanently
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			code = http.StatusPermanentRedirect
		}
		http.Redirect(w, r, newURL, code)
	})
}
