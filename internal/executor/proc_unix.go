//go:build unix

package executor

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcessTree starts cmd in its own process group so that
// cancellation also reaches the processes it spawns
func configureProcessTree(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return killProcessTree(cmd)
	}
}

// killProcessTree sends SIGKILL to the process group led by cmd
func killProcessTree(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}
