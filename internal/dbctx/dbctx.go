// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dbctx binds a database handle to a request's context so that code
// deep in the call chain can reach it without an explicit parameter.
//
// The binding lives in the context value chain, never in a package variable,
// so concurrent requests each observe only their own handle.
package dbctx

import (
	"context"
	"errors"

	"github.com/clacky-ai/react-router-vite-starter/internal/store"
)

// ErrContextUnavailable is returned when no database handle is bound to the context.
var ErrContextUnavailable = errors.New("dbctx: no database handle bound to context")

type contextKey struct{}

// WithDB returns a copy of ctx that carries db.
// A binding made on a derived context shadows any outer one.
func WithDB(ctx context.Context, db store.DBTX) context.Context {
	return context.WithValue(ctx, contextKey{}, db)
}

// Run binds db for the extent of fn and calls it. Goroutines started by fn
// with the bound context (or one derived from it) see the same handle.
// fn's error is returned unchanged.
func Run(ctx context.Context, db store.DBTX, fn func(ctx context.Context) error) error {
	return fn(WithDB(ctx, db))
}

// Current returns the handle bound by the nearest enclosing WithDB or Run.
// It never falls back to a default handle.
func Current(ctx context.Context) (store.DBTX, error) {
	if ctx == nil {
		return nil, ErrContextUnavailable
	}
	db, ok := ctx.Value(contextKey{}).(store.DBTX)
	if !ok || db == nil {
		return nil, ErrContextUnavailable
	}
	return db, nil
}

// MustCurrent is like Current but panics when nothing is bound.
// Use it only where a missing binding means the middleware chain is miswired.
func MustCurrent(ctx context.Context) store.DBTX {
	db, err := Current(ctx)
	if err != nil {
		panic(err)
	}
	return db
}

// Queries returns store.Queries over the bound handle.
func Queries(ctx context.Context) (*store.Queries, error) {
	db, err := Current(ctx)
	if err != nil {
		return nil, err
	}
	return store.New(db), nil
}
