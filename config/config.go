// Package config holds the evaluator-wide tunables that are not per-call
// RPC fields (spec SPEC_FULL.md §9.1): timeout, memory cap, vertex chunk
// threshold, module import allow-list, and font search path. Loadable from
// YAML via gopkg.in/yaml.v3, following this pack's code-analysis teacher's
// own tool-configuration convention.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the evaluator's static configuration.
type Config struct {
	// Timeout bounds a single evaluation (spec §5, default 30s).
	Timeout time.Duration `yaml:"timeout"`
	// MemoryCapBytes is the per-evaluation memory cap handed to the evaluator
	// (spec §5, default 1 GiB); the evaluator does not enforce it.
	MemoryCapBytes int64 `yaml:"memory_cap_bytes"`
	// VertexChunkThreshold is the vertex count above which the serializer
	// emits a chunked Geometry instead of one flat record (spec §3.5, §6.2).
	VertexChunkThreshold int `yaml:"vertex_chunk_threshold"`
	// ModuleAllowList restricts which external modules the host-language
	// (Shape DSL/JS) evaluator may import (spec §6.7); empty means nothing
	// may be imported.
	ModuleAllowList []string `yaml:"module_allow_list"`
	// FontSearchPath lists directories for text() font files (spec §4.5).
	// No package in this module reads it; text() renders block glyphs.
	FontSearchPath []string `yaml:"font_search_path"`
}

// Default returns the spec-mandated defaults (spec §5): 30s timeout, 1 GiB
// memory cap, a 65536-vertex chunk threshold, an empty module allow-list
// (nothing importable until the host configures one), and no font search
// path (text() renders block glyphs, spec §4.5.1).
func Default() *Config {
	return &Config{
		Timeout:              30 * time.Second,
		MemoryCapBytes:       1 << 30,
		VertexChunkThreshold: 1 << 16,
		ModuleAllowList:      nil,
		FontSearchPath:       nil,
	}
}

// Load reads a YAML config file, filling any field the file omits from
// Default(). A missing file is not an error: Load returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AllowsModule reports whether name is on the configured allow-list.
func (c *Config) AllowsModule(name string) bool {
	for _, allowed := range c.ModuleAllowList {
		if allowed == name {
			return true
		}
	}
	return false
}
