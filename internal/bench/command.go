package bench

import (
	"context"
	"fmt"
	"io"

	"github.com/bebsworthy/pmbench/internal/executor"
)

// CommandRunner runs a command to completion
type CommandRunner interface {
	Run(ctx context.Context, command string, args []string) (*executor.ExecResult, error)
}

// ExecRunner runs commands through an executor.CommandExecutor
type ExecRunner struct {
	executor *executor.CommandExecutor
	options  executor.ExecOptions
	// Optional writers that receive the child's output as it is produced
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates a CommandRunner backed by the given executor
func NewExecRunner(e *executor.CommandExecutor, options executor.ExecOptions) *ExecRunner {
	return &ExecRunner{executor: e, options: options}
}

// WithOutput streams child output to the given writers
func (r *ExecRunner) WithOutput(stdout, stderr io.Writer) *ExecRunner {
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// Run implements CommandRunner
func (r *ExecRunner) Run(ctx context.Context, command string, args []string) (*executor.ExecResult, error) {
	return r.executor.ExecuteWithStreaming(ctx, command, args, r.options, r.stdout, r.stderr)
}

// runChecked runs a command and converts a spawn failure, timeout or
// non-zero exit into an error. The captured stderr is returned either way.
func runChecked(ctx context.Context, runner CommandRunner, command string, args []string) (stdout, stderr string, err error) {
	result, err := runner.Run(ctx, command, args)
	if err != nil {
		return "", "", err
	}
	if result.Error != nil {
		return result.Stdout, result.Stderr, result.Error
	}
	if result.ExitCode != 0 {
		return result.Stdout, result.Stderr, fmt.Errorf("%s exited with status %d", command, result.ExitCode)
	}
	return result.Stdout, result.Stderr, nil
}
