// Package version_test provides tests for version management functionality.
package version

import (
	"strings"
	"testing"
)

func TestGetCodenameForVersion(t *testing.T) {
	tests := []struct {
		name             string
		version          string
		expectedCodename string
	}{
		{
			name:             "exact match for 0.3.0",
			version:          "0.3.0",
			expectedCodename: "Carnot",
		},
		{
			name:             "patch version 0.3.1 should use 0.3.0 codename",
			version:          "0.3.1",
			expectedCodename: "Carnot",
		},
		{
			name:             "patch version 0.3.99 should use 0.3.0 codename",
			version:          "0.3.99",
			expectedCodename: "Carnot",
		},
		{
			name:             "exact match for 1.0.0",
			version:          "1.0.0",
			expectedCodename: "Boltzmann",
		},
		{
			name:             "version without codename",
			version:          "0.10.0",
			expectedCodename: "",
		},
		{
			name:             "patch version without base codename",
			version:          "0.10.5",
			expectedCodename: "",
		},
		{
			name:             "invalid version",
			version:          "invalid",
			expectedCodename: "",
		},
		{
			name:             "prerelease version should use base codename",
			version:          "0.3.0-alpha.1",
			expectedCodename: "Carnot",
		},
		{
			name:             "patch prerelease version should use base codename",
			version:          "0.3.3-beta.2",
			expectedCodename: "Carnot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetCodenameForVersion(tt.version)
			if result != tt.expectedCodename {
				t.Errorf("GetCodenameForVersion(%q) = %q, want %q", tt.version, result, tt.expectedCodename)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	if got := GetVersion(); got != Version {
		t.Errorf("GetVersion() = %q, want %q", got, Version)
	}
}

func TestGetBaseVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	tests := []struct {
		version string
		want    string
	}{
		{"0.3.0", "0.3.0"},
		{"0.3.0+42.abc1234", "0.3.0"},
		{"1.2.3-rc.1", "1.2.3"},
		{"not-semver", "not-semver"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := GetBaseVersion(); got != tt.want {
			t.Errorf("GetBaseVersion() with Version=%q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestGetBuildMetadata(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "0.3.0+42.abc1234"
	if got := GetBuildMetadata(); got != "42.abc1234" {
		t.Errorf("GetBuildMetadata() = %q, want %q", got, "42.abc1234")
	}

	Version = "0.3.0"
	if got := GetBuildMetadata(); got != "" {
		t.Errorf("GetBuildMetadata() without metadata = %q, want empty", got)
	}
}

func TestGetInfo(t *testing.T) {
	info, err := GetInfo()
	if err != nil {
		t.Fatalf("GetInfo() error = %v", err)
	}
	if info.Version != Version {
		t.Errorf("Info.Version = %q, want %q", info.Version, Version)
	}
	if info.SemVer == nil {
		t.Error("Info.SemVer is nil")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Info.Platform = %q, want os/arch", info.Platform)
	}
}

func TestGetInfoInvalidVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "garbage"
	if _, err := GetInfo(); err == nil {
		t.Error("GetInfo() with invalid version expected error")
	}
}

func TestGetFormattedVersion(t *testing.T) {
	originalVersion, originalCommit, originalDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = originalVersion, originalCommit, originalDate }()

	Version = "0.3.0"
	GitCommit = "abcdef1234567890"
	BuildDate = "2026-08-01"

	got := GetFormattedVersion()
	if !strings.Contains(got, "Ask Joule v0.3.0 'Carnot'") {
		t.Errorf("GetFormattedVersion() = %q, missing name and codename", got)
	}
	if !strings.Contains(got, "commit abcdef1") {
		t.Errorf("GetFormattedVersion() = %q, missing short commit", got)
	}
	if !strings.Contains(got, "built 2026-08-01") {
		t.Errorf("GetFormattedVersion() = %q, missing build date", got)
	}
}

func TestGetDetailedVersion(t *testing.T) {
	got := GetDetailedVersion()
	for _, want := range []string{"Ask Joule v", "Git Commit:", "Go Version:", "Platform:"} {
		if !strings.Contains(got, want) {
			t.Errorf("GetDetailedVersion() missing %q in %q", want, got)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "0.3.0"
	if err := ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() error = %v", err)
	}

	Version = "bogus"
	if err := ValidateVersion(); err == nil {
		t.Error("ValidateVersion() with invalid version expected error")
	}
}
