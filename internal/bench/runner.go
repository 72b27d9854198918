package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bebsworthy/pmbench/internal/debug"
)

// InstallVerb returns the subcommand used to add a package: "add" for
// yarn, "install" for every other manager.
func InstallVerb(manager string) string {
	if manager == "yarn" {
		return "add"
	}
	return "install"
}

// Runner installs packages one at a time with a single manager
type Runner struct {
	cmd CommandRunner
	out io.Writer
	now func() time.Time
}

// NewRunner creates a Runner that reports progress to out
func NewRunner(cmd CommandRunner, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cmd: cmd,
		out: out,
		now: time.Now,
	}
}

// WithClock replaces the time source used to measure installs
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run probes the manager's version, then installs each package in order.
// The first failure aborts the run; later packages are not attempted.
func (r *Runner) Run(ctx context.Context, manager string, packages []string) RunOutcome {
	outcome := RunOutcome{Manager: manager}

	debug.LogSection("Benchmark " + manager)
	r.printf("Started Benchmarking %s...\n", manager)

	version, err := Probe(ctx, r.cmd, manager)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Version = version
	r.printf("%s version: %s\n", manager, version)

	verb := InstallVerb(manager)
	results := make([]InstallResult, 0, len(packages))

	for _, pkg := range packages {
		if err := ctx.Err(); err != nil {
			outcome.Results = results
			outcome.Err = &InstallError{Package: pkg, Manager: manager, Err: err}
			return outcome
		}

		start := r.now()
		_, stderr, err := runChecked(ctx, r.cmd, manager, []string{verb, pkg})
		if err != nil {
			debug.LogError(err, "installing "+pkg)
			outcome.Results = results
			outcome.Err = &InstallError{Package: pkg, Manager: manager, Stderr: stderr, Err: err}
			return outcome
		}
		elapsed := r.now().Sub(start).Milliseconds()

		r.printf("%s (%s): %dms\n", pkg, manager, elapsed)
		results = append(results, InstallResult{
			Package:        pkg,
			Manager:        manager,
			ManagerVersion: version,
			Time:           elapsed,
		})
	}

	r.printf("Benchmark for %s complete.\n\n", manager)

	outcome.Results = results
	return outcome
}

func (r *Runner) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, a...) //nolint:errcheck
}
