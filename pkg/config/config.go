// Package config provides the configuration types and validation logic for pmbench.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure for pmbench
type Config struct {
	// Packages are installed in this order by every manager
	Packages []string `yaml:"packages"`
	// Output is the path of the JSON results file
	Output string `yaml:"output,omitempty"`
	// Timeout bounds each child process; zero waits indefinitely
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// WorkDir is the directory the package managers run in
	WorkDir string `yaml:"workdir,omitempty"`
	// Env adds KEY=VALUE variables to the package managers' environment
	Env []string `yaml:"env,omitempty"`
}

// Validate performs validation on the Config
func (c *Config) Validate() error {
	if len(c.Packages) == 0 {
		return fmt.Errorf("at least one package is required")
	}

	for i, pkg := range c.Packages {
		if err := validatePackageName(pkg); err != nil {
			return fmt.Errorf("package %d: %w", i, err)
		}
	}

	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path is required")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	for _, kv := range c.Env {
		if key, _, ok := strings.Cut(kv, "="); !ok || key == "" || strings.ContainsAny(key, " \t") {
			return fmt.Errorf("env entry %q must be KEY=VALUE", kv)
		}
	}

	return nil
}

// validatePackageName rejects names a manager would parse as something else
func validatePackageName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("package name is required")
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("package name %q has surrounding whitespace", name)
	case strings.ContainsAny(name, " \t\r\n"):
		return fmt.Errorf("package name %q contains whitespace", name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("package name %q looks like a flag", name)
	}
	return nil
}

// Clone creates a deep copy of the Config
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.Packages != nil {
		clone.Packages = make([]string, len(c.Packages))
		copy(clone.Packages, c.Packages)
	}
	if c.Env != nil {
		clone.Env = append([]string(nil), c.Env...)
	}
	return &clone
}

// Merge overlays the non-zero fields of other onto a copy of c
func (c *Config) Merge(other *Config) *Config {
	merged := c.Clone()
	if other == nil {
		return merged
	}
	if len(other.Packages) > 0 {
		merged.Packages = append([]string(nil), other.Packages...)
	}
	if other.Output != "" {
		merged.Output = other.Output
	}
	if other.Timeout != 0 {
		merged.Timeout = other.Timeout
	}
	if other.WorkDir != "" {
		merged.WorkDir = other.WorkDir
	}
	// Variables from other win over earlier ones with the same key
	if len(other.Env) > 0 {
		merged.Env = append(merged.Env, other.Env...)
	}
	return merged
}

// ParseConfig decodes YAML data without validating it. Unknown keys are
// rejected and an empty document yields an empty Config.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}
