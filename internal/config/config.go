package config

import (
	"fmt"
	"strings"
)

const CurrentVersion = 1

const (
	DefaultProvider = "cursor"
	DefaultLimit    = 30
	DefaultFormat   = "table"
	DefaultLogLevel = "warn"
)

type Config struct {
	Version   int                       `toml:"version" json:"version" yaml:"version"`
	Defaults  Defaults                  `toml:"defaults" json:"defaults" yaml:"defaults"`
	Logging   Logging                   `toml:"logging" json:"logging" yaml:"logging"`
	Providers map[string]ProviderConfig `toml:"providers,omitempty" json:"providers,omitempty" yaml:"providers,omitempty"`
}

type Defaults struct {
	Provider   string `toml:"provider" json:"provider" yaml:"provider"`
	Limit      int    `toml:"limit" json:"limit" yaml:"limit"`
	Format     string `toml:"format" json:"format" yaml:"format"`
	SearchPool int    `toml:"search_pool" json:"search_pool" yaml:"search_pool"`
}

type Logging struct {
	Level string `toml:"level" json:"level" yaml:"level"`
}

// ProviderConfig overrides where a provider looks for its data. When Roots
// is non-empty it replaces the built-in per-platform locations.
type ProviderConfig struct {
	Roots []string `toml:"roots,omitempty" json:"roots,omitempty" yaml:"roots,omitempty"`
}

func Default() Config {
	return Config{
		Version: CurrentVersion,
		Defaults: Defaults{
			Provider:   DefaultProvider,
			Limit:      DefaultLimit,
			Format:     DefaultFormat,
			SearchPool: 500,
		},
		Logging: Logging{Level: DefaultLogLevel},
	}
}

// withDefaults fills fields left empty in a partially written file.
func (c Config) withDefaults() Config {
	def := Default()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if strings.TrimSpace(c.Defaults.Provider) == "" {
		c.Defaults.Provider = def.Defaults.Provider
	}
	if c.Defaults.Limit == 0 {
		c.Defaults.Limit = def.Defaults.Limit
	}
	if strings.TrimSpace(c.Defaults.Format) == "" {
		c.Defaults.Format = def.Defaults.Format
	}
	if c.Defaults.SearchPool == 0 {
		c.Defaults.SearchPool = def.Defaults.SearchPool
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = def.Logging.Level
	}
	return c
}

func (c Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.Defaults.Limit < 1 {
		return fmt.Errorf("defaults.limit must be a positive integer, got %d", c.Defaults.Limit)
	}
	if c.Defaults.SearchPool < 1 {
		return fmt.Errorf("defaults.search_pool must be a positive integer, got %d", c.Defaults.SearchPool)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
