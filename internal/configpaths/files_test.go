package configpaths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mousetrail/mousetrail/internal/configpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	cases := []struct {
		name string
		path string
		pick func(j, y, tm []string) []string
	}{
		{"json", "/tmp/custom.json", func(j, _, _ []string) []string { return j }},
		{"yaml", "/tmp/custom.yml", func(_, y, _ []string) []string { return y }},
		{"toml", "/tmp/custom.toml", func(_, _, tm []string) []string { return tm }},
		{"no extension", "/tmp/custom", func(j, _, _ []string) []string { return j }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tc.path)
			list := tc.pick(j, y, tm)
			require.NotEmpty(t, list)
			assert.Equal(t, tc.path, list[0])
		})
	}
}

func TestConfigCandidatePathsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG paths only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	j, y, tm := configpaths.ConfigCandidatePaths("")
	assert.Contains(t, j, filepath.Join(xdg, "mousetrail", "plot.json"))
	assert.Contains(t, y, filepath.Join(xdg, "mousetrail", "config.yaml"))
	assert.Contains(t, tm, filepath.Join("/etc", "mousetrail", "config.toml"))
}

func TestDefaultCacheDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG paths only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, err := configpaths.DefaultCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "mousetrail"), dir)

	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	dir, err = configpaths.DefaultCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".cache", "mousetrail"), dir)
}
