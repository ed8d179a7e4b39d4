// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the read paths behind the public pages.
package service

import "strings"

// Menu slugs.
const (
	MenuMain   = "main"
	MenuFooter = "footer"
)

// MenuItem represents a navigation link.
type MenuItem struct {
	Title    string
	URL      string
	Target   string
	Exact    bool // only active on an exact path match
	IsActive bool
	Children []MenuItem
}

// MenuService serves the site's fixed navigation menus.
type MenuService struct {
	menus map[string][]MenuItem
}

// NewMenuService creates a MenuService with the main and footer menus.
func NewMenuService() *MenuService {
	return &MenuService{
		menus: map[string][]MenuItem{
			MenuMain: {
				{Title: "首页", URL: "/", Exact: true},
				{Title: "关于", URL: "/about"},
				{Title: "文章", URL: "/posts"},
				{Title: "联系", URL: "/contact"},
			},
			MenuFooter: {
				{Title: "首页", URL: "/", Exact: true},
				{Title: "关于", URL: "/about"},
				{Title: "联系我们", URL: "/contact"},
			},
		},
	}
}

// GetMenu returns a copy of the menu with the given slug, or nil if unknown.
func (s *MenuService) GetMenu(slug string) []MenuItem {
	items, ok := s.menus[slug]
	if !ok {
		return nil
	}
	return copyMenu(items)
}

// GetMenuForPath returns the menu with IsActive set for items matching currentPath.
func (s *MenuService) GetMenuForPath(slug, currentPath string) []MenuItem {
	items := s.GetMenu(slug)
	markActive(items, currentPath)
	return items
}

func copyMenu(items []MenuItem) []MenuItem {
	out := make([]MenuItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Children = copyMenu(item.Children)
	}
	return out
}

func markActive(items []MenuItem, currentPath string) {
	for i := range items {
		items[i].IsActive = IsActivePath(items[i].URL, currentPath, items[i].Exact)
		markActive(items[i].Children, currentPath)
	}
}

// IsActivePath reports whether a link to url should be highlighted on currentPath.
// Non-exact links also match nested paths, so /posts stays active on /posts/{id}.
func IsActivePath(url, currentPath string, exact bool) bool {
	if url == currentPath {
		return true
	}
	if exact || url == "/" {
		return false
	}
	return strings.HasPrefix(currentPath, strings.TrimSuffix(url, "/")+"/")
}
