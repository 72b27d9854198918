package bench

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProbeFailed matches any *ProbeError
	ErrProbeFailed = errors.New("version probe failed")

	// ErrInstallFailed matches any *InstallError
	ErrInstallFailed = errors.New("package install failed")
)

// ProbeError reports a failed `<manager> --version` invocation
type ProbeError struct {
	Manager string
	Stderr  string
	Err     error
}

// Error implements the error interface
func (e *ProbeError) Error() string {
	return fmt.Sprintf("Error getting %s version: %s", e.Manager, detail(e.Stderr, e.Err))
}

// Unwrap returns the underlying error
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProbeError) Is(target error) bool {
	return target == ErrProbeFailed
}

// InstallError reports a failed install of a single package
type InstallError struct {
	Package string
	Manager string
	Stderr  string
	Err     error
}

// Error implements the error interface
func (e *InstallError) Error() string {
	return fmt.Sprintf("Error installing %s using %s: %s", e.Package, e.Manager, detail(e.Stderr, e.Err))
}

// Unwrap returns the underlying error
func (e *InstallError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *InstallError) Is(target error) bool {
	return target == ErrInstallFailed
}

// detail prefers the captured stderr and falls back to the cause.
func detail(stderr string, err error) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}
