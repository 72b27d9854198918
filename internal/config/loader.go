// Package config provides configuration loading for pmbench.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bebsworthy/pmbench/internal/debug"
	"github.com/bebsworthy/pmbench/pkg/config"
)

const (
	// ConfigFileName is the default configuration file name
	ConfigFileName = ".pmbench.yaml"

	// ConfigEnvVar is the environment variable to specify custom config path
	ConfigEnvVar = "PMBENCH_CONFIG"
)

// Loader handles loading configuration files
type Loader struct {
	// SearchPaths contains the paths to search for configuration files
	SearchPaths []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		SearchPaths: getDefaultSearchPaths(),
	}
}

// Load returns the defaults overlaid with the first configuration file
// found. An explicit path wins over ConfigEnvVar, which wins over the
// search paths. No file at all is not an error.
func (l *Loader) Load(explicitPath string) (*config.Config, error) {
	debug.LogSection("Configuration Loading")

	if explicitPath != "" {
		return l.LoadFromPath(explicitPath)
	}

	if envPath := os.Getenv(ConfigEnvVar); envPath != "" {
		debug.Log("Loading config from environment variable %s: %s", ConfigEnvVar, envPath)
		cfg, err := l.LoadFromPath(envPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", ConfigEnvVar, err)
		}
		return cfg, nil
	}

	debug.Log("Searching for config in: %v", l.SearchPaths)
	for _, searchPath := range l.SearchPaths {
		configPath := filepath.Join(searchPath, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			debug.Log("Found config at: %s", configPath)
			return l.LoadFromPath(configPath)
		}
	}

	debug.Log("No config file found, using defaults")
	return Default(), nil
}

// LoadFromPath loads configuration from a specific file path and overlays
// it onto the defaults
func (l *Loader) LoadFromPath(path string) (*config.Config, error) {
	debug.Log("Loading config from file: %s", path)

	// #nosec G304 - path comes from the user or the search paths
	file, err := os.Open(path)
	if err != nil {
		debug.LogError(err, "opening config file")
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }() //nolint:errcheck // Best effort cleanup

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	fileCfg, err := config.ParseConfig(data)
	if err != nil {
		debug.LogError(err, "parsing config")
		return nil, err
	}

	cfg := Default().Merge(fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	debug.Log("Loaded config: packages=%v, output=%s, timeout=%s", cfg.Packages, cfg.Output, cfg.Timeout)
	return cfg, nil
}

func getDefaultSearchPaths() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return []string{cwd}
}
