// Package config holds the settings of the linearize command, read from a
// TOML file:
//
//	rules = "rules/spa.xml"
//	jobs = 4
//	format = "net"
//	color = false
//	log_level = "debug"
//	db = "scores.db"
package config

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/BurntSushi/toml"
)

var LogLevels = []string{"debug", "info", "warn", "error"}

type Config struct {
	// Rules is a rule file or a directory of rule files
	Rules string `toml:"rules"`

	// Jobs is the number of sentences scored in parallel
	Jobs int `toml:"jobs"`

	Format   string `toml:"format"`
	Color    bool   `toml:"color"`
	LogLevel string `toml:"log_level"`

	// Db is the optional sqlite file the score matrices are exported to
	Db string `toml:"db"`
}

func Default() Config {
	return Config{
		Jobs:     runtime.GOMAXPROCS(0),
		Format:   "pairs",
		Color:    true,
		LogLevel: "info",
	}
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that have a closed set of choices.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}

	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("bad log_level %q: allowed values are %v", c.LogLevel, LogLevels)
	}

	if !slices.Contains([]string{"pairs", "net", "tree", "json"}, c.Format) {
		return fmt.Errorf("bad format %q", c.Format)
	}

	return nil
}
