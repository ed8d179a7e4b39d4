// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripTrailingSlash(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := StripTrailingSlash(next)

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantLoc  string
	}{
		{"root untouched", http.MethodGet, "/", http.StatusOK, ""},
		{"no slash untouched", http.MethodGet, "/posts", http.StatusOK, ""},
		{"trailing slash", http.MethodGet, "/posts/", http.StatusMovedPermanently, "/posts"},
		{"keeps query", http.MethodGet, "/posts/?page=2", http.StatusMovedPermanently, "/posts?page=2"},
		{"multiple slashes", http.MethodGet, "/about//", http.StatusMovedPermanently, "/about"},
		{"post uses 308", http.MethodPost, "/contact/", http.StatusPermanentRedirect, "/contact"},
		{"head uses 301", http.MethodHead, "/about/", http.StatusMovedPermanently, "/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("Status = %d, want %d", rr.Code, tt.wantCode)
			}
			if got := rr.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
		})
	}
}
