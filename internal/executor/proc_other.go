//go:build !unix

package executor

import "os/exec"

// configureProcessTree leaves the default cancellation, which kills only
// the direct child; WaitDelay still bounds the wait on its descendants
func configureProcessTree(cmd *exec.Cmd) {}

// killProcessTree kills the direct child
func killProcessTree(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
