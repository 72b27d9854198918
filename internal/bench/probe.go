package bench

import (
	"context"
	"strings"

	"github.com/bebsworthy/pmbench/internal/debug"
)

// VersionFlag is passed to a manager to print its version
const VersionFlag = "--version"

// Probe runs `<manager> --version` and returns its trimmed stdout.
// The manager name is not validated.
func Probe(ctx context.Context, runner CommandRunner, manager string) (string, error) {
	stdout, stderr, err := runChecked(ctx, runner, manager, []string{VersionFlag})
	if err != nil {
		debug.LogError(err, "probing "+manager+" version")
		return "", &ProbeError{Manager: manager, Stderr: stderr, Err: err}
	}
	return strings.TrimSpace(stdout), nil
}
