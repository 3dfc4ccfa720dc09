// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// shortCommitLength matches "git rev-parse --short".
const shortCommitLength = 7

// Build is the resolved build stamp.
type Build struct {
	Version string
	Commit  string
	Dirty   bool
	Time    string
}

// Current returns the build stamp, taking ldflags values first and the
// embedded VCS settings for anything left at its default.
func Current() Build {
	build := Build{
		Version: Version,
		Commit:  GitCommit,
		Dirty:   GitDirty == "true",
		Time:    BuildTime,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		build = build.withSettings(info.Settings)
	}
	return build
}

func (build Build) withSettings(settings []debug.BuildSetting) Build {
	fillCommit := build.Commit == "unknown"
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if fillCommit {
				build.Commit = setting.Value
				if len(build.Commit) > shortCommitLength {
					build.Commit = build.Commit[:shortCommitLength]
				}
			}
		case "vcs.modified":
			if fillCommit {
				build.Dirty = setting.Value == "true"
			}
		case "vcs.time":
			if build.Time == "unknown" {
				build.Time = setting.Value
			}
		}
	}
	return build
}

// String formats the stamp as "0.1.0-dev (abc1234-dirty, <time>)".
func (build Build) String() string {
	dirty := ""
	if build.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", build.Version, build.Commit, dirty, build.Time)
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return Current().String()
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Print writes "<name> <Full()>" to w, for --version and the version
// subcommand.
func Print(w io.Writer, name string) {
	fmt.Fprintf(w, "%s %s\n", name, Full())
}
