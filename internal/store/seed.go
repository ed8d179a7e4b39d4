// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clacky-ai/react-router-vite-starter/internal/util"
)

type seedCategory struct {
	name        string
	description string
}

type seedPost struct {
	title      string
	content    string
	excerpt    string
	published  bool
	author     int
	views      int64
	age        time.Duration
	categories []int
}

var seedUsers = []CreateUserParams{
	{Name: "张三", Email: "zhangsan@example.com", Avatar: util.NullStringFromValue("https://api.dicebear.com/7.x/avataaars/svg?seed=zhangsan"), EmailVerified: true},
	{Name: "李四", Email: "lisi@example.com", Avatar: util.NullStringFromValue("https://api.dicebear.com/7.x/avataaars/svg?seed=lisi"), EmailVerified: true},
	{Name: "王五", Email: "wangwu@example.com"},
}

var seedCategories = []seedCategory{
	{name: "前端开发", description: "React、Vite 与现代前端工程化"},
	{name: "后端开发", description: "服务端架构与 API 设计"},
	{name: "数据库", description: "关系型数据库建模与查询"},
	{name: "DevOps", description: "部署、监控与持续集成"},
}

var seedPosts = []seedPost{
	{
		title:      "React Router v7 数据加载入门",
		content:    "## loader 是什么\n\nReact Router v7 的 **loader** 在服务器端运行，在渲染之前准备好页面数据。\n\n```ts\nexport async function loader() {\n  return { posts: await listPosts() };\n}\n```\n\n这样页面首屏即可获得完整的 HTML。",
		excerpt:    "了解 loader 如何在服务器端准备页面数据。",
		published:  true,
		author:     0,
		views:      1280,
		age:        2 * time.Hour,
		categories: []int{0, 1},
	},
	{
		title:      "用 AsyncLocalStorage 管理数据库连接",
		content:    "在一次请求的整个异步调用链中共享同一个数据库句柄，而不必层层传参。\n\n- 每个请求独立绑定\n- 并发请求互不干扰\n- 在绑定范围之外访问会立即报错",
		published:  true,
		author:     1,
		views:      342,
		age:        26 * time.Hour,
		categories: []int{1, 2},
	},
	{
		title:      "关系型数据库中的多对多建模",
		content:    "文章与分类之间通过 post_categories 关联表建立多对多关系，删除任意一端都会级联删除关联行。",
		excerpt:    "通过关联表实现文章与分类的多对多关系。",
		published:  true,
		author:     0,
		views:      57,
		age:        5 * 24 * time.Hour,
		categories: []int{2},
	},
	{
		title:     "没有分类的随笔",
		content:   "这篇文章没有任何分类，用来演示空分类列表的渲染效果。",
		published: true,
		author:    2,
		views:     3,
		age:       40 * 24 * time.Hour,
	},
	{
		title:      "草稿：部署到生产环境",
		content:    "这是一篇尚未发布的草稿，不会出现在文章列表中。",
		published:  false,
		author:     1,
		age:        time.Hour,
		categories: []int{3},
	},
}

// CategorySlug derives a URL slug from a category name. Names that
// transliterate to nothing usable fall back to a prefix of the id.
func CategorySlug(name, id string) string {
	slug := util.Slugify(name)
	if util.IsValidSlug(slug) {
		return slug
	}
	return "category-" + strings.ReplaceAll(id, "-", "")[:8]
}

// Seed fills an empty database with demo users, categories, posts and comments.
// It does nothing when disabled or when users already exist.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)
	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		slog.Info("database already has users, skipping seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	now := time.Now().UTC()

	userIDs := make([]string, len(seedUsers))
	for i, u := range seedUsers {
		u.ID = uuid.NewString()
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := qtx.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("creating user %s: %w", u.Email, err)
		}
		userIDs[i] = u.ID
	}

	categoryIDs := make([]string, len(seedCategories))
	for i, c := range seedCategories {
		categoryIDs[i] = uuid.NewString()
		if err := qtx.CreateCategory(ctx, CreateCategoryParams{
			ID:          categoryIDs[i],
			Name:        c.name,
			Description: util.NullStringFromValue(c.description),
			Slug:        util.Slugify(c.name),
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return fmt.Errorf("creating category %s: %w", c.name, err)
		}
	}

	var firstPostID string
	for _, p := range seedPosts {
		postID := uuid.NewString()
		created := now.Add(-p.age)
		if err := qtx.CreatePost(ctx, CreatePostParams{
			ID:        postID,
			Title:     p.title,
			Content:   p.content,
			Excerpt:   util.NullStringFromValue(p.excerpt),
			Published: p.published,
			AuthorID:  userIDs[p.author],
			ViewCount: p.views,
			CreatedAt: created,
			UpdatedAt: created,
		}); err != nil {
			return fmt.Errorf("creating post %q: %w", p.title, err)
		}
		for _, ci := range p.categories {
			if err := qtx.AddPostCategory(ctx, AddPostCategoryParams{
				ID:         uuid.NewString(),
				PostID:     postID,
				CategoryID: categoryIDs[ci],
				CreatedAt:  created,
			}); err != nil {
				return fmt.Errorf("linking post %q to category: %w", p.title, err)
			}
		}
		if firstPostID == "" {
			firstPostID = postID
		}
	}

	if err := seedComments(ctx, qtx, firstPostID, userIDs, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded demo content",
		"users", len(seedUsers),
		"categories", len(seedCategories),
		"posts", len(seedPosts),
	)
	return nil
}

// seedComments adds a short threaded discussion, including one unapproved reply.
func seedComments(ctx context.Context, q *Queries, postID string, userIDs []string, now time.Time) error {
	rootID := uuid.NewString()
	comments := []CreateCommentParams{
		{ID: rootID, Content: "写得很清楚，loader 的用法终于搞懂了！", AuthorID: userIDs[1], Approved: true},
		{ID: uuid.NewString(), Content: "谢谢支持，后续会补充 action 的内容。", AuthorID: userIDs[0], ParentID: util.NullStringFromValue(rootID), Approved: true},
		{ID: uuid.NewString(), Content: "待审核的评论不会显示。", AuthorID: userIDs[2], ParentID: util.NullStringFromValue(rootID)},
	}
	for i, c := range comments {
		c.PostID = postID
		c.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		c.UpdatedAt = c.CreatedAt
		if err := q.CreateComment(ctx, c); err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}
	}
	return nil
}
