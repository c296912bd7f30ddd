// SPDX-License-Identifier: MIT
package build

import (
	"os"
	"testing"
)

var (
	origName    string
	origTime    string
	origCommit  string
	origVersion string
	origFlags   ldFlags
)

func TestMain(m *testing.M) {
	origName = buildName
	origTime = buildTime
	origCommit = buildCommit
	origVersion = buildVersion
	if buildFlags != nil {
		origFlags = *buildFlags
	}

	exitCode := m.Run()

	buildName = origName
	buildTime = origTime
	buildCommit = origCommit
	buildVersion = origVersion
	if buildFlags != nil {
		*buildFlags = origFlags
	}

	os.Exit(exitCode)
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		buildName   string
		buildTime   string
		buildCommit string
		buildVer    string
		want        ldFlags
	}{
		{
			"All Flags Set",
			"testapp",
			"2025-04-13",
			"abcdef123",
			"v1.0.0",
			ldFlags{"testapp", "2025-04-13", "abcdef123", "v1.0.0"},
		},
		{
			"Dev Build Keeps Defaults",
			"",
			"",
			"",
			"",
			ldFlags{"specviz", "unknown", "unknown", "dev"},
		},
		{
			"Partial Flags",
			"testapp",
			"",
			"",
			"v1.0.0",
			ldFlags{"testapp", "unknown", "unknown", "v1.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buildFlags = &ldFlags{
				Name:    "specviz",
				Time:    "unknown",
				Commit:  "unknown",
				Version: "dev",
			}

			buildName = tt.buildName
			buildTime = tt.buildTime
			buildCommit = tt.buildCommit
			buildVersion = tt.buildVer

			Initialize()

			if *buildFlags != tt.want {
				t.Errorf("Initialize() flags = %+v, want %+v", *buildFlags, tt.want)
			}
		})
	}
}

func TestGetBuildFlags(t *testing.T) {
	expected := ldFlags{
		Name:    "testapp",
		Time:    "2025-04-13",
		Commit:  "abcdef123",
		Version: "v1.0.0",
	}
	buildFlags = &expected

	flags := GetBuildFlags()

	if flags.Name != expected.Name ||
		flags.Time != expected.Time ||
		flags.Commit != expected.Commit ||
		flags.Version != expected.Version {
		t.Errorf("GetBuildFlags() = %+v, want %+v", flags, expected)
	}
}
