package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func saveAndRestore() func() {
	v, c, b, bt := Version, GitCommit, GitBranch, BuildTime
	return func() {
		Version, GitCommit, GitBranch, BuildTime = v, c, b, bt
	}
}

func TestFromBuild_Defaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, GitBranch, BuildTime = "dev", "", "", ""

	info := fromBuild(nil, false)
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
	if info.Short() != "dev" {
		t.Errorf("Short() = %q", info.Short())
	}
}

func TestFromBuild_LinkerValuesWin(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, GitBranch, BuildTime = "1.0.0", "abc1234", "main", "2026-01-15T10:30:00Z"

	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "ffffffffffffffff"},
			{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
		},
	}
	info := fromBuild(bi, true)
	if !info.IsRelease {
		t.Error("1.0.0 should be a release")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected linker commit, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2026 {
		t.Errorf("expected linker build time, got %v", info.BuildDate)
	}
	if info.GoVersion != "go1.26.0" {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if got := info.String(); got != "1.0.0-abc1234 built 2026-01-15T10:30:00Z" {
		t.Errorf("String() = %q", got)
	}
}

func TestFromBuild_VCSFallback(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, GitBranch, BuildTime = "1.1.0", "", "feature/x", ""

	bi := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-01T08:00:00Z"},
	}}
	info := fromBuild(bi, true)
	if info.GitCommit != "0123456" {
		t.Errorf("expected truncated commit, got %q", info.GitCommit)
	}
	if !info.IsDirty {
		t.Error("expected dirty build")
	}
	if info.Short() != "1.1.0-0123456-dirty" {
		t.Errorf("Short() = %q", info.Short())
	}
	if !strings.Contains(info.String(), "(feature/x)") {
		t.Errorf("String() = %q", info.String())
	}
}
