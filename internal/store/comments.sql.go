// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const listApprovedCommentsForPost = `
SELECT cm.id, cm.content, cm.parent_id, cm.created_at,
       u.id, u.name, u.avatar
FROM comments cm
INNER JOIN users u ON u.id = cm.author_id
WHERE cm.post_id = ? AND cm.approved = 1
ORDER BY cm.created_at, cm.id
`

type ListApprovedCommentsForPostRow struct {
	ID           string
	Content      string
	ParentID     sql.NullString
	CreatedAt    time.Time
	AuthorID     string
	AuthorName   string
	AuthorAvatar sql.NullString
}

// ListApprovedCommentsForPost returns approved comments on a post in posting order.
func (q *Queries) ListApprovedCommentsForPost(ctx context.Context, postID string) ([]ListApprovedCommentsForPostRow, error) {
	rows, err := q.db.QueryContext(ctx, listApprovedCommentsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []ListApprovedCommentsForPostRow{}
	for rows.Next() {
		var i ListApprovedCommentsForPostRow
		if err := rows.Scan(
			&i.ID,
			&i.Content,
			&i.ParentID,
			&i.CreatedAt,
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

const countCommentsForPost = `SELECT COUNT(*) FROM comments WHERE post_id = ?`

func (q *Queries) CountCommentsForPost(ctx context.Context, postID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCommentsForPost, postID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createComment = `
INSERT INTO comments (id, content, post_id, author_id, parent_id, approved, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateCommentParams struct {
	ID        string
	Content   string
	PostID    string
	AuthorID  string
	ParentID  sql.NullString
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) error {
	_, err := q.db.ExecContext(ctx, createComment,
		arg.ID,
		arg.Content,
		arg.PostID,
		arg.AuthorID,
		arg.ParentID,
		arg.Approved,
		arg.CreatedAt.UTC(),
		arg.UpdatedAt.UTC(),
	)
	return err
}
