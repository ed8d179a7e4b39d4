// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "strings"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// String formats the info for -version output, e.g. "v1.2.3 (abc1234, 2025-01-30T12:00:00Z)".
// Missing parts are omitted; an empty Version reads as "dev".
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}

	var details []string
	if i.GitCommit != "" {
		details = append(details, i.GitCommit)
	}
	if i.BuildTime != "" {
		details = append(details, i.BuildTime)
	}
	if len(details) == 0 {
		return v
	}
	return v + " (" + strings.Join(details, ", ") + ")"
}
