// Package config loads and stores the checkmerge run configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"
)

const (
	// DefaultPath is the config file looked up in the working directory.
	DefaultPath = ".checkmerge.yaml"

	// EnvConfig names the environment variable that overrides the
	// config file path when no explicit path is given.
	EnvConfig = "CHECKMERGE_CONFIG"
)

// Config holds all configuration for checkmerge.
type Config struct {
	// Output is the directory report artifacts are written into.
	Output string `yaml:"output"`

	// BuildFlags are extra build flags passed to the package loader.
	BuildFlags []string `yaml:"build_flags"`

	// Tests includes test files of the loaded packages.
	Tests bool `yaml:"tests"`

	// Generated includes generated files in report generation.
	Generated bool `yaml:"generated"`

	// Cache controls the report artifact cache.
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig controls reuse of report artifacts across runs.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Output: ".",
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".checkmerge-cache",
		},
	}
}

// Load reads configuration with the following priority (highest to lowest):
// 1. The explicit path argument
// 2. $CHECKMERGE_CONFIG
// 3. ./.checkmerge.yaml
// 4. Defaults
//
// A missing file is an error only when it was named explicitly, by
// argument or environment; a missing ./.checkmerge.yaml means defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path = env
			explicit = true
		} else {
			path = DefaultPath
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && os.IsNotExist(err):
		return cfg, nil
	default:
		return nil, errors.Wrap(err, "read config %v", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config %v", path)
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create directory %v", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config %v", path)
	}

	return nil
}
