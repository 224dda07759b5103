package config

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	SourceFile     = "file"
	SourceMemgraph = "memgraph"
)

type ServerConfig struct {
	Port string `toml:"port"`
	Mode string `toml:"mode"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type SnapshotConfig struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: "release"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Snapshot: SnapshotConfig{Source: SourceFile, Path: "config/registry.yaml"},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load reads a TOML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}

	return cfg, nil
}

// ApplyEnv overrides file settings with environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := os.Getenv("SNAPSHOT_SOURCE"); v != "" {
		c.Snapshot.Source = v
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		c.Snapshot.Path = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Metrics.Enabled = enabled
		}
	}
}

func (c *Config) Validate() error {
	switch c.Snapshot.Source {
	case SourceFile:
		if c.Snapshot.Path == "" {
			return errors.New("snapshot.path is required for the file source")
		}
	case SourceMemgraph:
		if c.Memgraph.URI == "" {
			return errors.New("memgraph.uri is required for the memgraph source")
		}
	default:
		return errors.Errorf("unknown snapshot source %q", c.Snapshot.Source)
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return errors.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.Errorf("invalid server port %q", c.Server.Port)
	}
	return nil
}

// Resolve loads the config file named by CONFIG_PATH (or path when unset),
// falling back to Default when the file does not exist, then applies the
// environment and validates the result.
func Resolve(path string) (*Config, error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := Load(path)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
