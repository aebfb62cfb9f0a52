package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dirhist/internal/logger"
	"dirhist/internal/search"
)

const (
	// ConfigDir is the directory name under os.UserConfigDir
	ConfigDir = "dirhist"
	// ConfigFile is the config file name
	ConfigFile = "config.yaml"
)

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrPlotDirRequired = errors.New("plot_dir must not be empty")
)

// Config represents dirhist configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where search.log is written
	LogDir string `yaml:"log_dir"`

	// IgnoreCase compiles patterns case-insensitively
	IgnoreCase bool `yaml:"ignore_case"`

	// FollowSymlinks descends into symlinked directories
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// ExcludeDirs lists directory names that are never searched
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// PlotDir is where histogram images are written
	PlotDir string `yaml:"plot_dir"`

	// OpenPlot opens the histogram in the system viewer after plotting
	OpenPlot bool `yaml:"open_plot"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogDir:         logger.DefaultDir(),
		IgnoreCase:     false,
		FollowSymlinks: false,
		ExcludeDirs:    []string{},
		PlotDir:        ".",
		OpenPlot:       false,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dirhist/config.yaml or the
// platform equivalent
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, ConfigDir, ConfigFile), nil
}

// LoadConfig loads configuration from path.
// A missing file yields the defaults; a malformed or invalid file is an error.
// Keys present in the file override the defaults, absent keys keep them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// MergeWithFlags overrides config values with command line flags.
// nil pointers and empty slices leave the config value untouched.
func (c *Config) MergeWithFlags(logLevel *string, ignoreCase, followSymlinks *bool, excludeDirs []string, plotDir *string, openPlot *bool) {
	if logLevel != nil && *logLevel != "" {
		c.LogLevel = *logLevel
	}
	if ignoreCase != nil {
		c.IgnoreCase = *ignoreCase
	}
	if followSymlinks != nil {
		c.FollowSymlinks = *followSymlinks
	}
	if len(excludeDirs) > 0 {
		c.ExcludeDirs = append([]string(nil), excludeDirs...)
	}
	if plotDir != nil && *plotDir != "" {
		c.PlotDir = *plotDir
	}
	if openPlot != nil {
		c.OpenPlot = *openPlot
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if strings.TrimSpace(c.PlotDir) == "" {
		return ErrPlotDirRequired
	}
	return nil
}

// SearchOptions converts the configuration into engine options
func (c *Config) SearchOptions(log search.Logger) search.Options {
	return search.Options{
		IgnoreCase:     c.IgnoreCase,
		FollowSymlinks: c.FollowSymlinks,
		ExcludeDirs:    append([]string(nil), c.ExcludeDirs...),
		Logger:         log,
	}
}
