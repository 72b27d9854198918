package bench

import (
	"context"
	"fmt"
	"io"

	"github.com/bebsworthy/pmbench/internal/debug"
)

// Managers are benchmarked in this order
var Managers = []string{"npm", "yarn"}

// DefaultPackages is the package list used when none is configured
var DefaultPackages = []string{"next", "react", "pm2-windows-boot"}

// Orchestrator runs the benchmark for every manager in turn
type Orchestrator struct {
	runner *Runner
	out    io.Writer
}

// NewOrchestrator creates an Orchestrator that logs failures to out
func NewOrchestrator(runner *Runner, out io.Writer) *Orchestrator {
	if out == nil {
		out = io.Discard
	}
	return &Orchestrator{runner: runner, out: out}
}

// Run benchmarks each manager against packages and returns one outcome
// per manager. A failed run is logged and does not stop the next one.
func (o *Orchestrator) Run(ctx context.Context, packages []string) []RunOutcome {
	outcomes := make([]RunOutcome, 0, len(Managers))
	for _, manager := range Managers {
		outcome := o.runner.Run(ctx, manager, packages)
		if !outcome.Succeeded() {
			debug.Log("%s run aborted after %d of %d packages", manager, len(outcome.Results), len(packages))
			_, _ = fmt.Fprintln(o.out, outcome.Err) //nolint:errcheck
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// Results runs every manager and returns the concatenated records of the
// runs that completed.
func (o *Orchestrator) Results(ctx context.Context, packages []string) []InstallResult {
	return Collect(o.Run(ctx, packages))
}
