// Package config handles configuration loading for edgarscan.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	SEC     SECConfig     `mapstructure:"sec"     yaml:"sec"`
	Sweep   SweepConfig   `mapstructure:"sweep"   yaml:"sweep"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SECConfig holds EDGAR client settings.
type SECConfig struct {
	// Contact identifies the caller to SEC ("Your Name you@example.com").
	// SEC policy requires it; leaving it empty falls back to a generic
	// browser User-Agent, which risks being blocked.
	Contact   string `mapstructure:"contact"    yaml:"contact"`
	RateLimit int    `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second
}

// SweepConfig holds discovery sweep defaults.
type SweepConfig struct {
	MaxResults       int `mapstructure:"max_results"        yaml:"max_results"`
	PerInvestorLimit int `mapstructure:"per_investor_limit" yaml:"per_investor_limit"`
	HoldingsFilings  int `mapstructure:"holdings_filings"   yaml:"holdings_filings"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.edgarscan/config.yaml (home directory)
//  3. /etc/edgarscan/config.yaml (system)
//
// Environment variables override config file values.
// Format: EDGARSCAN_<SECTION>_<KEY>, e.g., EDGARSCAN_SEC_CONTACT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".edgarscan"))
	v.AddConfigPath("/etc/edgarscan")

	v.SetEnvPrefix("EDGARSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("EDGARSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// SEC defaults: stay under the published 10 req/s cap.
	v.SetDefault("sec.contact", "")
	v.SetDefault("sec.rate_limit", 8)

	// Sweep defaults mirror the per-call caps.
	v.SetDefault("sweep.max_results", 1000)
	v.SetDefault("sweep.per_investor_limit", 50)
	v.SetDefault("sweep.holdings_filings", 1)

	// Output defaults
	v.SetDefault("output.dir", ".")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads keys that must win over file values.
func overrideFromEnv(cfg *Config) {
	if contact := os.Getenv("EDGARSCAN_SEC_CONTACT"); contact != "" {
		cfg.SEC.Contact = contact
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
