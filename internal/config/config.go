// Package config loads site configuration and site metadata from a source directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/rovr/internal/limits"
	"git.home.luguber.info/inful/rovr/internal/logfields"
	"git.home.luguber.info/inful/rovr/internal/metadata"

	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
)

// Config is the content of _config.yml or _config.json.
type Config struct {
	// Destination is resolved relative to the source directory.
	Destination     string        `yaml:"destination"`
	Excludes        []string      `yaml:"excludes"`
	Includes        []string      `yaml:"includes"`
	HighlightSyntax bool          `yaml:"highlightSyntax"`
	HighlightStyle  string        `yaml:"highlightStyle"`
	Verbose         bool          `yaml:"verbose"`
	Limits          limits.Bounds `yaml:"limits"`
	Serve           ServeConfig   `yaml:"serve"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Port            int           `yaml:"port"`
	Debounce        time.Duration `yaml:"debounce"`
	RebuildInterval time.Duration `yaml:"rebuildInterval"`
	Metrics         *bool         `yaml:"metrics"`
}

// MetricsEnabled reports whether /metrics is served. Unset means enabled.
func (s ServeConfig) MetricsEnabled() bool {
	return s.Metrics == nil || *s.Metrics
}

// ConfigFiles are tried in order; the first one present is loaded.
var ConfigFiles = []string{"_config.yml", "_config.yaml", "_config.json"}

// MetadataFiles are tried in order; the first one present is loaded.
var MetadataFiles = []string{"_metadata.yml", "_metadata.yaml", "_metadata.json"}

// Load reads the configuration of the site rooted at src. A missing config
// file is not an error: defaults apply.
func Load(src string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loadEnvFiles(src, logger)

	cfg := &Config{}
	data, name, err := readFirst(src, ConfigFiles)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("No config file found, using defaults", logfields.Source(src))
	case err != nil:
		return nil, foundationerrors.FileSystemError(err, "failed to read config file").
			WithContext("file", name).
			Build()
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, foundationerrors.ConfigError(err, "failed to parse config file").
				WithContext("file", name).
				Build()
		}
		logger.Debug("Loaded config", logfields.Path(name))
	}

	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		return nil, foundationerrors.ConfigError(err, "failed to apply config defaults").Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return foundationerrors.ValidationError(fmt.Sprintf("serve.port out of range: %d", c.Serve.Port)).
			WithContext("field", "serve.port").
			Build()
	}
	if c.Serve.Debounce < 0 || c.Serve.RebuildInterval < 0 {
		return foundationerrors.ValidationError("serve durations must not be negative").
			WithContext("field", "serve").
			Build()
	}
	return nil
}

// DestinationPath returns the destination directory for a site rooted at src.
func (c *Config) DestinationPath(src string) string {
	if filepath.IsAbs(c.Destination) {
		return c.Destination
	}
	return filepath.Join(src, c.Destination)
}

// LoadMetadata reads the site metadata of the site rooted at src. A missing
// metadata file yields an empty map.
func LoadMetadata(src string, logger *slog.Logger) (map[string]any, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, name, err := readFirst(src, MetadataFiles)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("No site metadata file found", logfields.Source(src))
		return map[string]any{}, nil
	case err != nil:
		return nil, foundationerrors.FileSystemError(err, "failed to read site metadata").
			WithContext("file", name).
			Build()
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, foundationerrors.ConfigError(err, "failed to parse site metadata").
			WithContext("file", name).
			Build()
	}
	site, _ := metadata.Normalize(raw).(map[string]any)
	if site == nil {
		site = map[string]any{}
	}
	return site, nil
}

func readFirst(dir string, names []string) ([]byte, string, error) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return data, p, err
	}
	return nil, "", fs.ErrNotExist
}
