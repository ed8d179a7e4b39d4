// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clacky-ai/react-router-vite-starter/internal/render"
	"github.com/clacky-ai/react-router-vite-starter/internal/service"
	"github.com/clacky-ai/react-router-vite-starter/internal/util"
)

// PostsData holds data for the posts list template.
type PostsData struct {
	BaseTemplateData
	Page *service.PostsPageData
}

// PostData holds data for the post detail template.
type PostData struct {
	BaseTemplateData
	Post *service.PostDetail
}

// PostsHandler serves the post list and detail pages. Both read through the
// database handle bound to the request by middleware.Database.
type PostsHandler struct {
	*FrontendHandler
	postService *service.PostService
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(frontend *FrontendHandler, postService *service.PostService) *PostsHandler {
	return &PostsHandler{
		FrontendHandler: frontend,
		postService:     postService,
	}
}

// List handles GET /posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.postService.LoadPostsPage(r.Context(), service.LoadContext{IsDevelopment: h.isDev})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load posts", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "无法加载文章列表")
		return
	}

	base := h.getBaseTemplateData(r, "文章列表", "浏览我们的技术文章和教程")
	base.BodyClass = "posts"
	h.render(w, r, http.StatusOK, templatePosts, PostsData{
		BaseTemplateData: base,
		Page:             page,
	})
}

// Show handles GET /posts/{id}.
func (h *PostsHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.postService.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.renderNotFound(w, r)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load post", "id", id, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "无法加载文章")
		return
	}

	description := render.Excerpt(util.StringFromNull(post.Excerpt, ""), post.Content)
	base := h.getBaseTemplateData(r, post.Title, description)
	base.BodyClass = "post"
	h.render(w, r, http.StatusOK, templatePost, PostData{
		BaseTemplateData: base,
		Post:             post,
	})
}
