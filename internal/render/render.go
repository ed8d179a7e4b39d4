// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the page templates and writes HTML responses.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
)

const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templatesFS fs.FS
	isDev       bool

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	// IsDev re-parses templates on every render.
	IsDev bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	if cfg.TemplatesFS == nil {
		return nil, fmt.Errorf("render: TemplatesFS is required")
	}

	r := &Renderer{
		templatesFS: cfg.TemplatesFS,
		isDev:       cfg.IsDev,
	}

	templates, err := parseTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, err
	}
	r.templates = templates

	return r, nil
}

// parseTemplates builds one template set per page: base layout, every
// partial, then the page itself. Pages are keyed by file name without .html.
func parseTemplates(templatesFS fs.FS) (map[string]*template.Template, error) {
	partials, err := getTemplateFiles(templatesFS, partialsDir)
	if err != nil {
		return nil, fmt.Errorf("getting partials: %w", err)
	}

	pages, err := getTemplateFiles(templatesFS, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no templates found in %s", pagesDir)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, pagePath := range pages {
		name := strings.TrimSuffix(path.Base(pagePath), ".html")

		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, pagePath)

		tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		templates[name] = tmpl
	}

	return templates, nil
}

// getTemplateFiles returns all .html files in a directory.
// A missing directory yields no files.
func getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			// fs paths always use forward slashes
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a page template with the given name exists.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// Render executes the named page into a buffer, then writes status and body.
// Nothing is written to w when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	if r.isDev {
		templates, err := parseTemplates(r.templatesFS)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.templates = templates
		r.mu.Unlock()
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
