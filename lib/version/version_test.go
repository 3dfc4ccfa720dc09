// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestBuildString(t *testing.T) {
	t.Parallel()
	build := Build{Version: "1.2.0", Commit: "abc1234", Dirty: true, Time: "2026-03-01T10:00:00Z"}
	if got, want := build.String(), "1.2.0 (abc1234-dirty, 2026-03-01T10:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	build.Dirty = false
	if got := build.String(); strings.Contains(got, "dirty") {
		t.Errorf("String() = %q, should not be marked dirty", got)
	}
}

func TestWithSettingsFillsDefaults(t *testing.T) {
	t.Parallel()
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-02-01T00:00:00Z"},
	}
	build := Build{Version: "0.1.0-dev", Commit: "unknown", Time: "unknown"}.withSettings(settings)
	want := Build{Version: "0.1.0-dev", Commit: "0123456", Dirty: true, Time: "2026-02-01T00:00:00Z"}
	if build != want {
		t.Errorf("withSettings = %+v, want %+v", build, want)
	}
}

func TestWithSettingsKeepsLinkerValues(t *testing.T) {
	t.Parallel()
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-02-01T00:00:00Z"},
	}
	injected := Build{Version: "1.0.0", Commit: "feedbee", Dirty: false, Time: "2026-03-01T00:00:00Z"}
	if got := injected.withSettings(settings); got != injected {
		t.Errorf("withSettings = %+v, want linker values kept %+v", got, injected)
	}
}

func TestFullIncludesRuntime(t *testing.T) {
	t.Parallel()
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q does not start with Info()", full)
	}
	if !strings.Contains(full, runtime.Version()) || !strings.Contains(full, runtime.GOOS) {
		t.Errorf("Full() = %q missing Go version or platform", full)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	Print(&buffer, "chiptan")
	if got := buffer.String(); !strings.HasPrefix(got, "chiptan "+Info()) || !strings.HasSuffix(got, "\n") {
		t.Errorf("Print wrote %q", got)
	}
}
