// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries build-time version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Info holds the values injected via -ldflags at build time.
type Info struct {
	Version   string // semantic version from git tags, "dev" otherwise
	GitCommit string // short git commit hash
	BuildTime string // RFC3339 build timestamp
}

// Resolve fills empty fields from the embedded module build info, so
// `go install` and `go run` binaries still report something useful.
func (i Info) Resolve() Info {
	if i.Version == "" {
		i.Version = "dev"
	}
	if i.GitCommit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					i.GitCommit = s.Value[:7]
				}
			}
		}
	}
	return i
}

// String renders a single human-readable version line.
func (i Info) String() string {
	s := i.Version
	if s == "" {
		s = "dev"
	}
	if i.GitCommit != "" {
		s = fmt.Sprintf("%s (%s)", s, i.GitCommit)
	}
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}
