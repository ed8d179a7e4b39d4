// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ExcerptLength is the number of characters kept by Excerpt.
const ExcerptLength = 150

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	htmlSanitizer = bluemonday.UGCPolicy()

	// zhMagnitudes mirrors humanize.defaultMagnitudes with Chinese labels.
	zhMagnitudes = []humanize.RelTimeMagnitude{
		{D: time.Minute, Format: "刚刚", DivBy: 1},
		{D: time.Hour, Format: "%d 分钟%s", DivBy: time.Minute},
		{D: humanize.Day, Format: "%d 小时%s", DivBy: time.Hour},
		{D: humanize.Week, Format: "%d 天%s", DivBy: humanize.Day},
		{D: humanize.Month, Format: "%d 周%s", DivBy: humanize.Week},
		{D: humanize.Year, Format: "%d 个月%s", DivBy: humanize.Month},
		{D: math.MaxInt64, Format: "%d 年%s", DivBy: humanize.Year},
	}

	now = time.Now
)

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"timeAgo":    TimeAgo,
		"comma": func(n int64) string {
			return humanize.Comma(n)
		},
		"excerpt":  Excerpt,
		"markdown": Markdown,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// FormatDate formats t as a Chinese calendar date, e.g. 2025年3月1日.
func FormatDate(t time.Time) string {
	return t.Format("2006年1月2日")
}

// TimeAgo describes t relative to now, e.g. "3 小时前".
func TimeAgo(t time.Time) string {
	return humanize.CustomRelTime(t, now(), "前", "后", zhMagnitudes)
}

// Excerpt returns the stored excerpt when present, otherwise the first
// ExcerptLength characters of content followed by "...".
func Excerpt(excerpt, content string) string {
	if strings.TrimSpace(excerpt) != "" {
		return excerpt
	}
	if utf8.RuneCountInString(content) <= ExcerptLength {
		return content + "..."
	}
	runes := []rune(content)
	return string(runes[:ExcerptLength]) + "..."
}

// Markdown converts GitHub-flavoured markdown to sanitized HTML.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec // escaped above
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
}
