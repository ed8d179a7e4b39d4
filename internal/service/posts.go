// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clacky-ai/react-router-vite-starter/internal/dbctx"
	"github.com/clacky-ai/react-router-vite-starter/internal/store"
)

// ErrPostNotFound is returned when a post does not exist or is not published.
var ErrPostNotFound = errors.New("post not found")

// Author is the denormalized author projection attached to a post.
type Author struct {
	ID     string
	Name   string
	Avatar sql.NullString
}

// PostCategory is the category projection attached to a post.
type PostCategory struct {
	ID   string
	Name string
	Slug string
}

// PostWithCategories is a published post with its author and categories.
type PostWithCategories struct {
	ID         string
	Title      string
	Content    string
	Excerpt    sql.NullString
	Published  bool
	ViewCount  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Author     Author
	Categories []PostCategory
}

// PostListing is the result of ListPosts.
type PostListing struct {
	Posts      []PostWithCategories
	Categories []store.Category
}

// LoadContext carries request-scoped loader settings.
type LoadContext struct {
	IsDevelopment bool
}

// PostsPageData is what the posts route hands to the renderer.
type PostsPageData struct {
	Posts         []PostWithCategories
	Categories    []store.Category
	IsDevelopment bool
}

// PostServiceConfig configures a PostService.
type PostServiceConfig struct {
	// FanoutLimit caps concurrent per-post category queries. Zero or negative means unbounded.
	FanoutLimit int
}

// PostService reads posts through the database handle bound to the request context.
type PostService struct {
	fanoutLimit int
}

// NewPostService creates a new PostService.
func NewPostService(cfg PostServiceConfig) *PostService {
	return &PostService{
		fanoutLimit: cfg.FanoutLimit,
	}
}

// LoadPostsPage is the loader for the posts route.
func (s *PostService) LoadPostsPage(ctx context.Context, lc LoadContext) (*PostsPageData, error) {
	listing, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return &PostsPageData{
		Posts:         listing.Posts,
		Categories:    listing.Categories,
		IsDevelopment: lc.IsDevelopment,
	}, nil
}

// ListPosts returns published posts, newest first, each with its author and
// categories, plus the full category list.
//
// Categories are fetched per post concurrently. Results are written by index,
// so each post keeps its own list. Any failure fails the whole call.
func (s *PostService) ListPosts(ctx context.Context) (*PostListing, error) {
	queries, err := dbctx.Queries(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListPublishedPostsWithAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing published posts: %w", err)
	}

	categories, err := queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	posts := make([]PostWithCategories, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	if s.fanoutLimit > 0 {
		g.SetLimit(s.fanoutLimit)
	}

	for i, row := range rows {
		i, row := i, row
		posts[i] = postFromRow(row)
		g.Go(func() error {
			cats, err := categoriesForPost(gctx, row.ID)
			if err != nil {
				return fmt.Errorf("listing categories for post %s: %w", row.ID, err)
			}
			posts[i].Categories = cats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &PostListing{
		Posts:      posts,
		Categories: categories,
	}, nil
}

// categoriesForPost resolves the handle from ctx rather than taking it as a
// parameter. The result is never nil.
func categoriesForPost(ctx context.Context, postID string) ([]PostCategory, error) {
	queries, err := dbctx.Queries(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListCategoriesForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	cats := make([]PostCategory, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, PostCategory{ID: r.ID, Name: r.Name, Slug: r.Slug})
	}
	return cats, nil
}

func postFromRow(row store.ListPublishedPostsWithAuthorRow) PostWithCategories {
	return PostWithCategories{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Excerpt:   row.Excerpt,
		Published: row.Published,
		ViewCount: row.ViewCount,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Author: Author{
			ID:     row.AuthorID,
			Name:   row.AuthorName,
			Avatar: row.AuthorAvatar,
		},
		Categories: []PostCategory{},
	}
}

// PostDetail is a single published post with its approved comment threads.
type PostDetail struct {
	PostWithCategories
	Comments     []CommentNode
	CommentCount int
}

// GetPost returns one published post. Unknown or unpublished ids yield ErrPostNotFound.
func (s *PostService) GetPost(ctx context.Context, id string) (*PostDetail, error) {
	queries, err := dbctx.Queries(ctx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetPublishedPostWithAuthor(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("getting post %s: %w", id, err)
	}

	post := postFromRow(row)
	post.Categories, err = categoriesForPost(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("listing categories for post %s: %w", row.ID, err)
	}

	comments, err := queries.ListApprovedCommentsForPost(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for post %s: %w", row.ID, err)
	}

	return &PostDetail{
		PostWithCategories: post,
		Comments:           buildCommentTree(comments),
		CommentCount:       len(comments),
	}, nil
}
