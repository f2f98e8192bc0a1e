// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

// withBuildInfo replaces the embedded build information and restores
// the injected variables afterwards.
func withBuildInfo(t *testing.T, settings []debug.BuildSetting) {
	t.Helper()
	originalRead := readBuildInfo
	originalCommit, originalDirty, originalTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() {
		readBuildInfo = originalRead
		GitCommit, GitDirty, BuildTime = originalCommit, originalDirty, originalTime
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestCurrentFallsBackToVCSStamp(t *testing.T) {
	withBuildInfo(t, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-01T12:00:00Z"},
	})
	GitCommit, GitDirty, BuildTime = "unknown", "false", "unknown"

	info := Current()
	if info.Commit != "0123456" {
		t.Errorf("Commit = %q, want 0123456", info.Commit)
	}
	if !info.Dirty {
		t.Error("Dirty = false, want true")
	}
	if info.BuildTime != "2026-03-01T12:00:00Z" {
		t.Errorf("BuildTime = %q", info.BuildTime)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestCurrentPrefersInjectedValues(t *testing.T) {
	withBuildInfo(t, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "ffffffffffffffff"},
		{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
	})
	GitCommit, GitDirty, BuildTime = "abc1234", "false", "2026-02-10T00:00:00Z"

	info := Current()
	if info.Commit != "abc1234" || info.BuildTime != "2026-02-10T00:00:00Z" {
		t.Errorf("injected values overridden: %+v", info)
	}
}

func TestInfoFormat(t *testing.T) {
	withBuildInfo(t, nil)
	GitCommit, GitDirty, BuildTime = "abc1234", "true", "2026-02-10T00:00:00Z"

	want := Version + " (abc1234-dirty, 2026-02-10T00:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	full := Full()
	if !strings.HasPrefix(full, want) || !strings.Contains(full, "Go: "+runtime.Version()) {
		t.Errorf("Full() = %q", full)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
