// Package executor runs package-manager commands for pmbench.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bebsworthy/pmbench/internal/debug"
)

// ExecOptions defines options for command execution
type ExecOptions struct {
	// Working directory for the command
	WorkingDir string
	// Environment variables (in KEY=VALUE format)
	Environment []string
	// Timeout for command execution; zero means wait until the command exits
	Timeout time.Duration
	// Whether to inherit parent process environment
	InheritEnv bool
}

// ExecResult contains the result of command execution
type ExecResult struct {
	// Standard output from the command
	Stdout string
	// Standard error from the command
	Stderr string
	// Exit code of the command
	ExitCode int
	// Whether the command timed out
	TimedOut bool
	// Error if command failed to start
	Error error
}

// Failed reports whether the command could not be run or exited non-zero.
func (r *ExecResult) Failed() bool {
	return r.Error != nil || r.TimedOut || r.ExitCode != 0
}

// killGracePeriod bounds how long Wait keeps reading output after the
// command has exited or been killed
const killGracePeriod = 500 * time.Millisecond

// CommandExecutor executes external commands and blocks until they exit
type CommandExecutor struct {
	// Default timeout for commands if not specified; zero disables it
	defaultTimeout time.Duration
}

// NewCommandExecutor creates a new command executor. A non-positive
// defaultTimeout leaves commands unbounded.
func NewCommandExecutor(defaultTimeout time.Duration) *CommandExecutor {
	if defaultTimeout < 0 {
		defaultTimeout = 0
	}
	return &CommandExecutor{
		defaultTimeout: defaultTimeout,
	}
}

// Execute runs a command with the given options and captures its output
func (e *CommandExecutor) Execute(ctx context.Context, command string, args []string, options ExecOptions) (*ExecResult, error) {
	return e.ExecuteWithStreaming(ctx, command, args, options, nil, nil)
}

// ExecuteWithStreaming runs a command and streams output to the provided
// writers while also capturing it. Nil writers only capture.
func (e *CommandExecutor) ExecuteWithStreaming(ctx context.Context, command string, args []string, options ExecOptions, stdoutWriter, stderrWriter io.Writer) (*ExecResult, error) {
	if command == "" {
		return nil, fmt.Errorf("command cannot be empty")
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	debug.LogCommand(command, args, options.WorkingDir)

	cmd := exec.CommandContext(ctx, command, args...)
	// Cancellation kills the whole process tree, and Wait stops waiting on
	// pipes held open by orphaned descendants after the grace period.
	configureProcessTree(cmd)
	cmd.WaitDelay = killGracePeriod

	if options.WorkingDir != "" {
		absPath, err := ResolveWorkingDir(options.WorkingDir)
		if err != nil {
			return nil, err
		}
		cmd.Dir = absPath
	}

	env := e.prepareEnvironment(options)
	if len(env) > 0 {
		cmd.Env = env
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if stdoutWriter != nil {
		cmd.Stdout = io.MultiWriter(stdoutWriter, &stdoutBuf)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	if stderrWriter != nil {
		cmd.Stderr = io.MultiWriter(stderrWriter, &stderrBuf)
	} else {
		cmd.Stderr = &stderrBuf
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		execErr := ClassifyError(err, command, args)
		debug.LogError(execErr, "starting command")
		return &ExecResult{
			ExitCode: -1,
			Error:    execErr,
		}, nil
	}

	waitErr := cmd.Wait()
	debug.LogTiming(command+" "+strings.Join(args, " "), time.Since(start))

	if errors.Is(waitErr, exec.ErrWaitDelay) {
		// Exited cleanly; a background descendant kept the output pipes open
		debug.Log("%s left descendants holding its output open", command)
		waitErr = nil
	}

	timedOut := ctx.Err() == context.DeadlineExceeded

	exitCode := 0
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return &ExecResult{
				Stdout:   stdoutBuf.String(),
				Stderr:   stderrBuf.String(),
				ExitCode: -1,
				TimedOut: timedOut,
				Error:    ClassifyError(waitErr, command, args),
			}, nil
		}
	}

	result := &ExecResult{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		ExitCode: exitCode,
		TimedOut: timedOut,
	}
	switch {
	case timedOut:
		result.Error = &ExecError{Type: ErrorTypeTimeout, Command: command, Args: args, Err: ctx.Err()}
	case ctx.Err() != nil:
		// Killed by cancellation rather than exiting on its own
		result.Error = &ExecError{Type: ErrorTypeExecution, Command: command, Args: args, Err: ctx.Err()}
	}
	return result, nil
}

// ResolveWorkingDir returns the absolute path of dir after checking it is
// an existing directory
func ResolveWorkingDir(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", &ExecError{Type: ErrorTypeWorkingDirectory, Err: err, Details: err.Error()}
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ExecError{Type: ErrorTypeWorkingDirectory, Err: err, Details: absPath + " does not exist"}
		}
		return "", &ExecError{Type: ErrorTypeWorkingDirectory, Err: err, Details: err.Error()}
	}
	if !info.IsDir() {
		return "", &ExecError{Type: ErrorTypeWorkingDirectory, Details: absPath + " is not a directory"}
	}
	return absPath, nil
}

// prepareEnvironment prepares the environment variables for the command
func (e *CommandExecutor) prepareEnvironment(options ExecOptions) []string {
	var env []string

	if options.InheritEnv {
		env = os.Environ()
	}

	envMap := make(map[string]string)
	for _, e := range env {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for _, e := range options.Environment {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	env = make([]string, 0, len(envMap))
	for k, v := range envMap {
		env = append(env, k+"="+v)
	}

	return env
}
