// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the application.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/clacky-ai/react-router-vite-starter/internal/middleware"
	"github.com/clacky-ai/react-router-vite-starter/internal/render"
	"github.com/clacky-ai/react-router-vite-starter/internal/service"
)

// MenuItem represents a navigation link for template rendering.
type MenuItem struct {
	Title    string
	URL      string
	Target   string
	Children []MenuItem
	IsActive bool
}

// BaseTemplateData contains common fields expected by all page templates.
type BaseTemplateData struct {
	Title           string
	MetaDescription string
	SiteName        string
	CurrentPath     string
	BodyClass       string
	Device          string
	IsDevelopment   bool
	Year            int
	MainMenu        []MenuItem
	FooterMenu      []MenuItem
}

// IsMobile reports whether the client was classified as a phone.
func (d BaseTemplateData) IsMobile() bool {
	return d.Device == middleware.DeviceMobile
}

// PageData is the template data for static content pages.
type PageData struct {
	BaseTemplateData
}

// ErrorData holds data for the error template.
type ErrorData struct {
	BaseTemplateData
	StatusCode int
	Message    string
}

// FrontendHandler serves the public pages.
type FrontendHandler struct {
	renderer    *render.Renderer
	menuService *service.MenuService
	logger      *slog.Logger
	isDev       bool
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(renderer *render.Renderer, menuService *service.MenuService, logger *slog.Logger, isDev bool) *FrontendHandler {
	return &FrontendHandler{
		renderer:    renderer,
		menuService: menuService,
		logger:      logger,
		isDev:       isDev,
	}
}

// Home handles the homepage.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	base := h.getBaseTemplateData(r, "首页", "欢迎使用 React Router 应用模板")
	base.BodyClass = "home"
	h.render(w, r, http.StatusOK, templateHome, PageData{BaseTemplateData: base})
}

// About handles the about page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	base := h.getBaseTemplateData(r, "关于我们", "了解这个应用模板的技术特性与项目结构")
	base.BodyClass = "about"
	h.render(w, r, http.StatusOK, templateAbout, PageData{BaseTemplateData: base})
}

// Contact handles the contact page. The form is a client-side demo only.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	base := h.getBaseTemplateData(r, "联系我们", "有问题或建议？请通过表单与我们联系")
	base.BodyClass = "contact"
	h.render(w, r, http.StatusOK, templateContact, PageData{BaseTemplateData: base})
}

// NotFound handles unmatched routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r)
}

// getBaseTemplateData returns the base template data with common fields populated.
func (h *FrontendHandler) getBaseTemplateData(r *http.Request, title, metaDesc string) BaseTemplateData {
	return BaseTemplateData{
		Title:           title,
		MetaDescription: metaDesc,
		SiteName:        siteName,
		CurrentPath:     r.URL.Path,
		Device:          middleware.GetDevice(r.Context()),
		IsDevelopment:   h.isDev,
		Year:            time.Now().Year(),
		MainMenu:        h.loadMenu(service.MenuMain, r.URL.Path),
		FooterMenu:      h.loadMenu(service.MenuFooter, r.URL.Path),
	}
}

// loadMenu loads a menu by slug and marks active items.
func (h *FrontendHandler) loadMenu(slug, currentPath string) []MenuItem {
	items := h.menuService.GetMenuForPath(slug, currentPath)
	if items == nil {
		return nil
	}
	return menuItemsToView(items)
}

// menuItemsToView converts service menu items to view items.
func menuItemsToView(items []service.MenuItem) []MenuItem {
	result := make([]MenuItem, 0, len(items))
	for _, item := range items {
		result = append(result, MenuItem{
			Title:    item.Title,
			URL:      item.URL,
			Target:   item.Target,
			IsActive: item.IsActive,
			Children: menuItemsToView(item.Children),
		})
	}
	return result
}

// render renders a page template, falling back to the error page on failure.
func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) {
	if err := h.renderer.Render(w, status, templateName, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template", "template", templateName, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "页面渲染失败")
	}
}

// renderNotFound renders the 404 page.
func (h *FrontendHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	base := h.getBaseTemplateData(r, "页面未找到", "您访问的页面不存在")
	base.BodyClass = "error-404"
	h.render(w, r, http.StatusNotFound, templateNotFound, PageData{BaseTemplateData: base})
}

// renderError renders the error page. If that template fails too, a bare
// HTML response is written.
func (h *FrontendHandler) renderError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	base := h.getBaseTemplateData(r, "出错了", "")
	base.BodyClass = "error"
	data := ErrorData{
		BaseTemplateData: base,
		StatusCode:       statusCode,
		Message:          message,
	}

	if err := h.renderer.Render(w, statusCode, templateError, data); err == nil {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="zh-CN">
<head><meta charset="utf-8"><title>%d</title></head>
<body>
<h1>%d - %s</h1>
<p>处理您的请求时发生错误。</p>
</body>
</html>`, statusCode, statusCode, http.StatusText(statusCode))
}
