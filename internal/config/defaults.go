package config

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/rovr/internal/markdown"
)

// Defaults shared with the CLI.
const (
	DefaultDestination = "_BUILD"
	DefaultPort        = 4000
	DefaultDebounce    = 300 * time.Millisecond
)

// DefaultExcludes are always excluded from discovery; configured excludes
// are added to them.
var DefaultExcludes = []string{
	".*",
	"_config.yml",
	"_config.yaml",
	"_config.json",
	"_metadata.yml",
	"_metadata.yaml",
	"_metadata.json",
}

// ConfigDefaultApplier applies defaults for one configuration domain.
type ConfigDefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// BuildDefaultApplier handles output, discovery and highlighting defaults.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Destination == "" {
		cfg.Destination = DefaultDestination
	}
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = markdown.DefaultStyle
	}

	excludes := make([]string, 0, len(DefaultExcludes)+len(cfg.Excludes))
	seen := map[string]bool{}
	for _, p := range append(append([]string{}, DefaultExcludes...), cfg.Excludes...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		excludes = append(excludes, p)
	}
	cfg.Excludes = excludes
	return nil
}

// LimitsDefaultApplier fills unset rendering bounds.
type LimitsDefaultApplier struct{}

func (l *LimitsDefaultApplier) Domain() string { return "limits" }

func (l *LimitsDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Limits = cfg.Limits.WithDefaults()
	return nil
}

// ServeDefaultApplier handles preview server defaults.
type ServeDefaultApplier struct{}

func (s *ServeDefaultApplier) Domain() string { return "serve" }

func (s *ServeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = DefaultPort
	}
	if cfg.Serve.Debounce == 0 {
		cfg.Serve.Debounce = DefaultDebounce
	}
	return nil
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []ConfigDefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []ConfigDefaultApplier{
			&BuildDefaultApplier{},
			&LimitsDefaultApplier{},
			&ServeDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = NewDefaultApplier().ApplyDefaults(cfg)
	return cfg
}
