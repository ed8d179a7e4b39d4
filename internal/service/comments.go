// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"time"

	"github.com/clacky-ai/react-router-vite-starter/internal/store"
)

// CommentNode is an approved comment with its approved replies.
type CommentNode struct {
	ID        string
	Content   string
	CreatedAt time.Time
	Author    Author
	Replies   []CommentNode
}

// buildCommentTree converts the flat, time-ordered comment list into threads.
// Replies whose parent is not in the list (e.g. an unapproved parent) are dropped
// along with their subtree.
func buildCommentTree(rows []store.ListApprovedCommentsForPostRow) []CommentNode {
	children := make(map[string][]store.ListApprovedCommentsForPostRow)
	known := make(map[string]bool, len(rows))
	var roots []store.ListApprovedCommentsForPostRow

	for _, r := range rows {
		known[r.ID] = true
	}
	for _, r := range rows {
		switch {
		case !r.ParentID.Valid:
			roots = append(roots, r)
		case known[r.ParentID.String]:
			children[r.ParentID.String] = append(children[r.ParentID.String], r)
		}
	}

	var build func(r store.ListApprovedCommentsForPostRow) CommentNode
	build = func(r store.ListApprovedCommentsForPostRow) CommentNode {
		node := CommentNode{
			ID:        r.ID,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
			Author: Author{
				ID:     r.AuthorID,
				Name:   r.AuthorName,
				Avatar: r.AuthorAvatar,
			},
			Replies: make([]CommentNode, 0, len(children[r.ID])),
		}
		for _, c := range children[r.ID] {
			node.Replies = append(node.Replies, build(c))
		}
		return node
	}

	result := make([]CommentNode, 0, len(roots))
	for _, r := range roots {
		result = append(result, build(r))
	}
	return result
}
