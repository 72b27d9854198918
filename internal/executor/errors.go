package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Error types for command execution
var (
	// ErrCommandNotFound indicates the command was not found in PATH
	ErrCommandNotFound = errors.New("command not found")

	// ErrPermissionDenied indicates the command cannot be executed due to permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTimeout indicates the command timed out
	ErrTimeout = errors.New("command timed out")

	// ErrInvalidWorkingDirectory indicates the working directory is invalid
	ErrInvalidWorkingDirectory = errors.New("invalid working directory")
)

// ErrorType represents the type of execution error
type ErrorType int

const (
	// ErrorTypeUnknown indicates an unknown error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeCommandNotFound indicates the command was not found
	ErrorTypeCommandNotFound
	// ErrorTypePermissionDenied indicates permission was denied
	ErrorTypePermissionDenied
	// ErrorTypeTimeout indicates the command timed out
	ErrorTypeTimeout
	// ErrorTypeWorkingDirectory indicates working directory error
	ErrorTypeWorkingDirectory
	// ErrorTypeExecution indicates general execution error
	ErrorTypeExecution
)

// ExecError represents a detailed execution error
type ExecError struct {
	Type    ErrorType
	Command string
	Args    []string
	Err     error
	Details string
}

// Error implements the error interface
func (e *ExecError) Error() string {
	cmd := e.Command
	if len(e.Args) > 0 {
		cmd = fmt.Sprintf("%s %s", e.Command, strings.Join(e.Args, " "))
	}

	switch e.Type {
	case ErrorTypeCommandNotFound:
		return fmt.Sprintf("command not found: %s", e.Command)
	case ErrorTypePermissionDenied:
		return fmt.Sprintf("permission denied: %s", cmd)
	case ErrorTypeTimeout:
		return fmt.Sprintf("command timed out: %s", cmd)
	case ErrorTypeWorkingDirectory:
		return fmt.Sprintf("working directory error: %s", e.Details)
	case ErrorTypeExecution:
		return fmt.Sprintf("execution error for %s: %v", cmd, e.Err)
	default:
		return fmt.Sprintf("unknown error for %s: %v", cmd, e.Err)
	}
}

// Unwrap returns the underlying error
func (e *ExecError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ExecError) Is(target error) bool {
	switch target {
	case ErrCommandNotFound:
		return e.Type == ErrorTypeCommandNotFound
	case ErrPermissionDenied:
		return e.Type == ErrorTypePermissionDenied
	case ErrTimeout:
		return e.Type == ErrorTypeTimeout
	case ErrInvalidWorkingDirectory:
		return e.Type == ErrorTypeWorkingDirectory
	}
	return false
}

// messageRule maps a substring of a lower-cased error message to a type
type messageRule struct {
	needles []string
	errType ErrorType
}

// execRules apply to *exec.Error, which is returned when a binary cannot
// be resolved or started
var execRules = []messageRule{
	{[]string{"executable file not found", "command not found", "no such file or directory"}, ErrorTypeCommandNotFound},
	{[]string{"permission denied", "operation not permitted"}, ErrorTypePermissionDenied},
}

// fallbackRules apply to any other error; the first match wins
var fallbackRules = []messageRule{
	{[]string{"permission denied"}, ErrorTypePermissionDenied},
	{[]string{"not found"}, ErrorTypeCommandNotFound},
	{[]string{"timeout", "deadline exceeded"}, ErrorTypeTimeout},
	{[]string{"working directory", "chdir"}, ErrorTypeWorkingDirectory},
}

// match returns the type of the first rule with a needle in msg
func match(rules []messageRule, msg string) (ErrorType, bool) {
	msg = strings.ToLower(msg)
	for _, rule := range rules {
		for _, needle := range rule.needles {
			if strings.Contains(msg, needle) {
				return rule.errType, true
			}
		}
	}
	return ErrorTypeUnknown, false
}

// ClassifyError wraps err in an ExecError whose Type describes why the
// command could not run. A plain non-zero exit is ErrorTypeExecution.
func ClassifyError(err error, command string, args []string) *ExecError {
	if err == nil {
		return nil
	}

	execErr := &ExecError{
		Type:    ErrorTypeExecution,
		Command: command,
		Args:    args,
		Err:     err,
	}

	var startErr *exec.Error
	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		execErr.Type = ErrorTypeTimeout
	case errors.As(err, &startErr):
		if t, ok := match(execRules, startErr.Error()); ok {
			execErr.Type = t
		} else if t, ok := match(fallbackRules, startErr.Error()); ok {
			execErr.Type = t
		}
	case errors.As(err, &exitErr):
		// ran and exited non-zero
	default:
		if t, ok := match(fallbackRules, err.Error()); ok {
			execErr.Type = t
		}
		if execErr.Type == ErrorTypeWorkingDirectory {
			execErr.Details = err.Error()
		}
	}

	return execErr
}
