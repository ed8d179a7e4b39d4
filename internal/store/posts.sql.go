// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const listPublishedPostsWithAuthor = `
SELECT p.id, p.title, p.content, p.excerpt, p.published, p.view_count,
       p.created_at, p.updated_at,
       u.id, u.name, u.avatar
FROM posts p
INNER JOIN users u ON u.id = p.author_id
WHERE p.published = 1
ORDER BY p.created_at DESC, p.id DESC
`

type ListPublishedPostsWithAuthorRow struct {
	ID           string
	Title        string
	Content      string
	Excerpt      sql.NullString
	Published    bool
	ViewCount    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AuthorID     string
	AuthorName   string
	AuthorAvatar sql.NullString
}

// ListPublishedPostsWithAuthor returns published posts joined to their author, newest first.
// Ties on created_at are broken by id so repeated calls return the same order.
func (q *Queries) ListPublishedPostsWithAuthor(ctx context.Context) ([]ListPublishedPostsWithAuthorRow, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedPostsWithAuthor)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []ListPublishedPostsWithAuthorRow{}
	for rows.Next() {
		var i ListPublishedPostsWithAuthorRow
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Content,
			&i.Excerpt,
			&i.Published,
			&i.ViewCount,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.AuthorID,
			&i.AuthorName,
			&i.AuthorAvatar,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPublishedPostWithAuthor = `
SELECT p.id, p.title, p.content, p.excerpt, p.published, p.view_count,
       p.created_at, p.updated_at,
       u.id, u.name, u.avatar
FROM posts p
INNER JOIN users u ON u.id = p.author_id
WHERE p.id = ? AND p.published = 1
`

// GetPublishedPostWithAuthor returns a single published post. Unpublished posts yield sql.ErrNoRows.
func (q *Queries) GetPublishedPostWithAuthor(ctx context.Context, id string) (ListPublishedPostsWithAuthorRow, error) {
	row := q.db.QueryRowContext(ctx, getPublishedPostWithAuthor, id)
	var i ListPublishedPostsWithAuthorRow
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Content,
		&i.Excerpt,
		&i.Published,
		&i.ViewCount,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.AuthorID,
		&i.AuthorName,
		&i.AuthorAvatar,
	)
	return i, err
}

const listCategoriesForPost = `
SELECT c.id, c.name, c.slug
FROM post_categories pc
INNER JOIN categories c ON c.id = pc.category_id
WHERE pc.post_id = ?
ORDER BY c.name, c.id
`

type ListCategoriesForPostRow struct {
	ID   string
	Name string
	Slug string
}

// ListCategoriesForPost returns the categories linked to a post through post_categories.
func (q *Queries) ListCategoriesForPost(ctx context.Context, postID string) ([]ListCategoriesForPostRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategoriesForPost, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []ListCategoriesForPostRow{}
	for rows.Next() {
		var i ListCategoriesForPostRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPost = `
INSERT INTO posts (id, title, content, excerpt, published, author_id, view_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreatePostParams struct {
	ID        string
	Title     string
	Content   string
	Excerpt   sql.NullString
	Published bool
	AuthorID  string
	ViewCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePost inserts a post. Timestamps are written in UTC so that SQLite's
// text comparison in ORDER BY created_at matches chronological order.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) error {
	_, err := q.db.ExecContext(ctx, createPost,
		arg.ID,
		arg.Title,
		arg.Content,
		arg.Excerpt,
		arg.Published,
		arg.AuthorID,
		arg.ViewCount,
		arg.CreatedAt.UTC(),
		arg.UpdatedAt.UTC(),
	)
	return err
}

const addPostCategory = `
INSERT INTO post_categories (id, post_id, category_id, created_at)
VALUES (?, ?, ?, ?)
`

type AddPostCategoryParams struct {
	ID         string
	PostID     string
	CategoryID string
	CreatedAt  time.Time
}

func (q *Queries) AddPostCategory(ctx context.Context, arg AddPostCategoryParams) error {
	_, err := q.db.ExecContext(ctx, addPostCategory,
		arg.ID,
		arg.PostID,
		arg.CategoryID,
		arg.CreatedAt.UTC(),
	)
	return err
}

const countPostCategories = `SELECT COUNT(*) FROM post_categories WHERE post_id = ?`

func (q *Queries) CountPostCategories(ctx context.Context, postID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPostCategories, postID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deletePost = `DELETE FROM posts WHERE id = ?`

func (q *Queries) DeletePost(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}
