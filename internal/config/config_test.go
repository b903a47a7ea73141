package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFirstRunReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, firstRun, err := Load()
	require.NoError(t, err)
	assert.True(t, firstRun)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 500, cfg.UI.EventTailRows)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "https://companion.example"
	cfg.Backend.MonitorURL = "wss://companion.example/ws/monitor"
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg))

	loaded, firstRun, err := Load()
	require.NoError(t, err)
	assert.False(t, firstRun)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "modwatch")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"),
		[]byte("backend:\n  base_url: http://10.1.2.3:9000\n"), 0644))

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.1.2.3:9000", cfg.Backend.BaseURL)
	// unspecified sections fall back to defaults
	assert.Equal(t, 5000, cfg.UI.RefreshMs)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "modwatch")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"),
		[]byte("backend: ["), 0644))

	_, _, err := Load()
	assert.Error(t, err)
}
