package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1<<30), cfg.MemoryCapBytes)
	assert.Equal(t, 1<<16, cfg.VertexChunkThreshold)
	assert.Empty(t, cfg.ModuleAllowList)
	assert.Empty(t, cfg.FontSearchPath)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "timeout: 5s\nmemory_cap_bytes: 2048\nvertex_chunk_threshold: 100\nmodule_allow_list:\n  - geo\n  - trig\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, int64(2048), cfg.MemoryCapBytes)
	assert.Equal(t, 100, cfg.VertexChunkThreshold)
	assert.Equal(t, []string{"geo", "trig"}, cfg.ModuleAllowList)
}

func TestLoadInvalidYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAllowsModule(t *testing.T) {
	cfg := &Config{ModuleAllowList: []string{"geo"}}
	assert.True(t, cfg.AllowsModule("geo"))
	assert.False(t, cfg.AllowsModule("trig"))
}
