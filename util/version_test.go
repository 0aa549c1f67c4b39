package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanVersion(t *testing.T) {
	cases := map[string]string{
		"main-v12.0.1376-g7ac6f3": "12.0.1376-g7ac6f3",
		"develop-v2.3.4":          "2.3.4",
		"v1.2.3":                  "v1.2.3",
		"1.2.3":                   "1.2.3",
		"latest":                  "latest",
		"":                        "",
	}

	for in, want := range cases {
		assert.Equal(t, want, CleanVersion(in), in)
	}
}

func TestParseSemanticVersion(t *testing.T) {
	v := ParseSemanticVersion("2.3.4")
	require.NotNil(t, v.Major)
	require.NotNil(t, v.Minor)
	require.NotNil(t, v.Patch)
	assert.Equal(t, 2, *v.Major)
	assert.Equal(t, 3, *v.Minor)
	assert.Equal(t, 4, *v.Patch)

	// Masterminds semver coerces two-part versions, zero-filling the patch.
	v = ParseSemanticVersion("1.2")
	require.NotNil(t, v.Major)
	require.NotNil(t, v.Minor)
	require.NotNil(t, v.Patch)
	assert.Equal(t, 0, *v.Patch)

	v = ParseSemanticVersion("latest")
	assert.Nil(t, v.Major)

	v = ParseSemanticVersion("")
	assert.Nil(t, v.Major)
}
