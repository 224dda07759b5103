package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MergesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9090"

[snapshot]
source = "memgraph"

[memgraph]
uri = "bolt://memgraph:7687"
user = "registry"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, SourceMemgraph, cfg.Snapshot.Source)
	assert.Equal(t, "bolt://memgraph:7687", cfg.Memgraph.URI)
	assert.Equal(t, "registry", cfg.Memgraph.User)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nport ="))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SNAPSHOT_SOURCE", "memgraph")
	t.Setenv("MEMGRAPH_PASSWORD", "secret")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, SourceMemgraph, cfg.Snapshot.Source)
	assert.Equal(t, "secret", cfg.Memgraph.Password)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	tests := map[string]func(c *Config){
		"unknown source":  func(c *Config) { c.Snapshot.Source = "ftp" },
		"missing path":    func(c *Config) { c.Snapshot.Path = "" },
		"missing uri":     func(c *Config) { c.Snapshot.Source = SourceMemgraph; c.Memgraph.URI = "" },
		"unknown level":   func(c *Config) { c.Log.Level = "loud" },
		"unknown format":  func(c *Config) { c.Log.Format = "xml" },
		"non-number port": func(c *Config) { c.Server.Port = "http" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "MEMGRAPH_URI", "MEMGRAPH_USER",
		"MEMGRAPH_PASSWORD", "SNAPSHOT_SOURCE", "SNAPSHOT_PATH", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}
}

func TestResolve(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.toml"))
	cfg, err := Resolve("ignored.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	t.Setenv("CONFIG_PATH", writeConfig(t, "[log]\nlevel = \"shout\"\n"))
	_, err = Resolve("")
	assert.Error(t, err)
}
