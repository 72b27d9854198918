package main

import (
	"fmt"
	"io"
	"time"

	"github.com/bebsworthy/pmbench/internal/bench"
	"github.com/bebsworthy/pmbench/internal/config"
	"github.com/bebsworthy/pmbench/internal/debug"
	"github.com/bebsworthy/pmbench/internal/executor"
	"github.com/bebsworthy/pmbench/internal/report"
	"github.com/bebsworthy/pmbench/internal/ui"
	pkgconfig "github.com/bebsworthy/pmbench/pkg/config"
	"github.com/spf13/cobra"
)

// newCommandRunner builds the runner for manager commands; tests replace it
var newCommandRunner = func(cfg *pkgconfig.Config, stream io.Writer) bench.CommandRunner {
	runner := bench.NewExecRunner(executor.NewCommandExecutor(cfg.Timeout), executor.ExecOptions{
		WorkingDir:  cfg.WorkDir,
		Environment: cfg.Env,
		InheritEnv:  true,
	})
	if stream != nil {
		runner.WithOutput(stream, stream)
	}
	return runner
}

// now is the clock used to time installs; tests replace it
var now = time.Now

// selectPackages prompts for a subset of packages; tests replace it
var selectPackages = func(packages []string) ([]string, error) {
	return ui.NewInteractiveUI().SelectPackages(packages)
}

// runBenchmark resolves the configuration, benchmarks every manager and
// writes the results file. Manager failures are reported but do not fail
// the command.
func runBenchmark(cmd *cobra.Command, opts *options, args []string) error {
	start := time.Now()
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(opts, args)
	if err != nil {
		return err
	}

	if opts.pick {
		cfg.Packages, err = selectPackages(cfg.Packages)
		if err != nil {
			return fmt.Errorf("failed to select packages: %w", err)
		}
	}

	debug.LogSection("Benchmark")
	debug.Log("Managers: %v", bench.Managers)
	debug.Log("Packages: %v", cfg.Packages)

	var stream io.Writer
	if opts.verbose {
		stream = cmd.ErrOrStderr()
	}

	runner := bench.NewRunner(newCommandRunner(cfg, stream), out).WithClock(now)
	results := bench.NewOrchestrator(runner, out).Results(cmd.Context(), cfg.Packages)

	if err := report.WriteJSON(cfg.Output, results); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Results saved to %s\n", cfg.Output) //nolint:errcheck

	if len(results) > 0 {
		_, _ = fmt.Fprintln(out) //nolint:errcheck
		if err := report.WriteTable(out, results); err != nil {
			debug.LogError(err, "writing summary table")
		}
	}

	debug.LogTiming("benchmark", time.Since(start))
	return nil
}

// resolveConfig layers flags and arguments over the loaded configuration
func resolveConfig(opts *options, args []string) (*pkgconfig.Config, error) {
	cfg, err := config.NewLoader().Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg = cfg.Merge(&pkgconfig.Config{
		Packages: args,
		Output:   opts.output,
		Timeout:  opts.timeout,
		WorkDir:  opts.workDir,
		Env:      opts.env,
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.WorkDir != "" {
		dir, err := executor.ResolveWorkingDir(cfg.WorkDir)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		cfg.WorkDir = dir
	}
	return cfg, nil
}
