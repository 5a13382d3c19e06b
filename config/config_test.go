package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencil-cli/stencil/variable"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
replay_dir: /var/lib/stencil/replay
no_input: true
default_context:
  project_name: Overridden
  use_docker: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/stencil/replay", cfg.ReplayDir)
	assert.True(t, cfg.NoInput)
	assert.Len(t, cfg.DefaultContext, 2)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestGetReplayDirDefault(t *testing.T) {
	cfg := &Config{}
	assert.NotEmpty(t, cfg.GetReplayDir())
	assert.Equal(t, "replay", filepath.Base(cfg.GetReplayDir()))

	cfg.ReplayDir = "/custom"
	assert.Equal(t, "/custom", cfg.GetReplayDir())
}

func TestOverrides(t *testing.T) {
	cfg := &Config{DefaultContext: map[string]any{
		"project_name": "My Project",
		"use_docker":   true,
		"count":        3,
		"color/shade":  "dark",
	}}

	overrides := cfg.Overrides()
	require.Len(t, overrides, 4)
	assert.Equal(t, variable.String("My Project"), overrides["project_name"])
	assert.Equal(t, variable.Bool(true), overrides["use_docker"])
	assert.Equal(t, variable.String("3"), overrides["count"])
	assert.Equal(t, variable.String("dark"), overrides["color/shade"])
}

func TestOverridesEmpty(t *testing.T) {
	cfg := &Config{}
	assert.Nil(t, cfg.Overrides())
}

func TestResetClearsCache(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	Reset()
	third, err := Load()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
