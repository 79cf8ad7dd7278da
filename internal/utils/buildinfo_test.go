package utils

import (
	"runtime/debug"
	"testing"
)

func TestVersionFromBuildInfo(t *testing.T) {
	testCases := []struct {
		name     string
		info     debug.BuildInfo
		expected string
	}{
		{
			name:     "tagged_module",
			info:     debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}},
			expected: "v1.2.3",
		},
		{
			name: "development_build_with_revision",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			expected: "devel-0123456789ab-dirty",
		},
		{
			name:     "no_information",
			info:     debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			expected: "unknown",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := versionFromBuildInfo(&testCase.info); actual != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, actual)
			}
		})
	}
}
