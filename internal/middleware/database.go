// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/clacky-ai/react-router-vite-starter/internal/dbctx"
	"github.com/clacky-ai/react-router-vite-starter/internal/store"
)

// Database binds db to every request's context so loaders can reach it
// through dbctx without threading it through handler arguments.
// It panics at construction time if db is nil.
func Database(db store.DBTX) func(http.Handler) http.Handler {
	if db == nil {
		panic("middleware.Database: nil database handle")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(dbctx.WithDB(r.Context(), db)))
		})
	}
}
