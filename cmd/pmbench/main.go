// Package main is the entry point for the pmbench CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bebsworthy/pmbench/internal/debug"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// options holds the values of the command-line flags
type options struct {
	debug      bool
	configPath string
	output     string
	timeout    time.Duration
	workDir    string
	env        []string
	pick       bool
	verbose    bool
}

// newRootCmd creates and returns the root command
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pmbench [packages...]",
		Short: "Compare package install times of npm and yarn",
		Long: `pmbench installs the same packages with npm and then with yarn, one at a
time, and records how long each install took.

Results are written as a JSON array to benchmark_results.json. A manager
that fails to report its version or to install a package is skipped and
contributes no records; the results file is written regardless.

Each manager is benchmarked on its own: a failure while benchmarking npm
does not stop the yarn benchmark, and yarn's records are still saved.

CONFIGURATION:
  Defaults can be set in .pmbench.yaml in the working directory, in the
  file named by PMBENCH_CONFIG, or in the file passed to --config:

    packages: [next, react, pm2-windows-boot]
    output: benchmark_results.json
    timeout: 10m
    workdir: ./sandbox
    env:
      - npm_config_registry=http://localhost:4873

  Packages given as arguments replace the configured list. Variables
  passed with --env are added after those in the file.`,
		Example: `  # Benchmark the default packages
  pmbench

  # Benchmark specific packages in a scratch directory
  pmbench --dir /tmp/bench lodash express

  # Choose packages interactively and bound each install
  pmbench --pick --timeout 5m`,
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				debug.Enable()
			}
			return runBenchmark(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flags.StringVarP(&opts.output, "output", "o", "", "Path of the JSON results file")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Maximum time for each manager command (0 waits indefinitely)")
	flags.StringVar(&opts.workDir, "dir", "", "Directory to run the package managers in")
	flags.StringArrayVarP(&opts.env, "env", "e", nil, "Set KEY=VALUE in the package managers' environment (repeatable)")
	flags.BoolVar(&opts.pick, "pick", false, "Choose the packages to benchmark interactively")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Stream package manager output to stderr")

	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
