// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers: a migrated temp database,
// quiet loggers, and builders for users, categories, posts and comments.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clacky-ai/react-router-vite-starter/internal/store"
	"github.com/clacky-ai/react-router-vite-starter/internal/util"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary SQLite database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "starter-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
	}
}

// CreateUser inserts a user and returns its id.
func CreateUser(t *testing.T, db store.DBTX, name string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		ID:        id,
		Name:      name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "." + id[:8] + "@example.com",
		Avatar:    util.NullStringFromValue("https://example.com/avatars/" + id + ".png"),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", name, err)
	}
	return id
}

// CreateCategory inserts a category with a slug derived from name and returns its id.
func CreateCategory(t *testing.T, db store.DBTX, name string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	err := store.New(db).CreateCategory(context.Background(), store.CreateCategoryParams{
		ID:        id,
		Name:      name,
		Slug:      store.CategorySlug(name, id),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCategory(%q): %v", name, err)
	}
	return id
}

// PostFixture describes a post to insert.
type PostFixture struct {
	AuthorID    string
	Title       string
	Content     string
	Excerpt     string
	Published   bool
	ViewCount   int64
	CreatedAt   time.Time // zero means now
	CategoryIDs []string
}

// CreatePost inserts a post plus its category links and returns the post id.
func CreatePost(t *testing.T, db store.DBTX, p PostFixture) string {
	t.Helper()

	ctx := context.Background()
	q := store.New(db)

	id := uuid.NewString()
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	content := p.Content
	if content == "" {
		content = "Body of " + p.Title
	}

	if err := q.CreatePost(ctx, store.CreatePostParams{
		ID:        id,
		Title:     p.Title,
		Content:   content,
		Excerpt:   util.NullStringFromValue(p.Excerpt),
		Published: p.Published,
		AuthorID:  p.AuthorID,
		ViewCount: p.ViewCount,
		CreatedAt: created,
		UpdatedAt: created,
	}); err != nil {
		t.Fatalf("CreatePost(%q): %v", p.Title, err)
	}

	for _, catID := range p.CategoryIDs {
		if err := q.AddPostCategory(ctx, store.AddPostCategoryParams{
			ID:         uuid.NewString(),
			PostID:     id,
			CategoryID: catID,
			CreatedAt:  created,
		}); err != nil {
			t.Fatalf("AddPostCategory(%q): %v", p.Title, err)
		}
	}
	return id
}

// CreateComment inserts a comment and returns its id. parentID may be empty.
func CreateComment(t *testing.T, db store.DBTX, postID, authorID, parentID, content string, approved bool, at time.Time) string {
	t.Helper()

	id := uuid.NewString()
	if err := store.New(db).CreateComment(context.Background(), store.CreateCommentParams{
		ID:        id,
		Content:   content,
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  util.NullStringFromValue(parentID),
		Approved:  approved,
		CreatedAt: at,
		UpdatedAt: at,
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return id
}
