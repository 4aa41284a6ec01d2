// Package config loads symbolmutator's run configuration from an
// optional YAML file, layered under command-line flag overrides and
// over built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omarish/symbol-mutator/internal/mutate"
)

// Config is the full set of knobs a run can be configured with,
// whether from a YAML file, flags, or defaults.
type Config struct {
	Target          string   `yaml:"target"`
	Output          string   `yaml:"output"`
	Seed            int64    `yaml:"seed"`
	Theme           string   `yaml:"theme"`
	InternalPrefix  []string `yaml:"internal_prefix"`
	CacheDB         string   `yaml:"cache_db"`
	Watch           bool     `yaml:"watch"`
	MetricsAddr     string   `yaml:"metrics_addr"`
	VerboseMetrics  bool     `yaml:"verbose_metrics"`
	SummaryTable    bool     `yaml:"summary_table"`
}

// Defaults returns the built-in configuration baseline: seed 42,
// gibberish theme, matching the reference CLI's stated defaults.
func Defaults() Config {
	return Config{
		Seed:  42,
		Theme: string(mutate.ThemeGibberish),
	}
}

// Load reads and parses a YAML file at path into a copy of base,
// overwriting only the fields YAML sets. A missing path is not an
// error: the caller's defaults pass through untouched, matching the
// "file optional, flags and defaults otherwise govern" layering.
func Load(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return Config{}, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// MutateConfig projects the layered Config down to the mutate engine's
// own Config, validating the theme along the way.
func (c Config) MutateConfig() (mutate.Config, error) {
	theme := mutate.Theme(c.Theme)
	mc := mutate.Config{
		Seed:             c.Seed,
		Theme:            theme,
		InternalPrefixes: c.InternalPrefix,
	}
	if err := mc.Validate(); err != nil {
		return mutate.Config{}, err
	}
	return mc, nil
}
