package config

import (
	"github.com/bebsworthy/pmbench/internal/bench"
	"github.com/bebsworthy/pmbench/internal/report"
	"github.com/bebsworthy/pmbench/pkg/config"
)

// Default returns the configuration used when no file or flag overrides it
func Default() *config.Config {
	return &config.Config{
		Packages: append([]string(nil), bench.DefaultPackages...),
		Output:   report.DefaultOutputFile,
	}
}
