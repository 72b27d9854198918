package executor

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestExecError_Error(t *testing.T) {
	cause := errors.New("exit status 1")
	tests := []struct {
		name string
		err  *ExecError
		want string
	}{
		{"not found", &ExecError{Type: ErrorTypeCommandNotFound, Command: "yarn", Args: []string{"--version"}}, "command not found: yarn"},
		{"permission", &ExecError{Type: ErrorTypePermissionDenied, Command: "npm", Args: []string{"install", "next"}}, "permission denied: npm install next"},
		{"timeout", &ExecError{Type: ErrorTypeTimeout, Command: "npm"}, "command timed out: npm"},
		{"working dir", &ExecError{Type: ErrorTypeWorkingDirectory, Details: "/tmp/x does not exist"}, "working directory error: /tmp/x does not exist"},
		{"execution", &ExecError{Type: ErrorTypeExecution, Command: "yarn", Args: []string{"add", "react"}, Err: cause}, "execution error for yarn add react: exit status 1"},
		{"unknown", &ExecError{Type: ErrorTypeUnknown, Command: "npm", Err: cause}, "unknown error for npm: exit status 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ExecError{Type: ErrorTypeTimeout, Err: cause}

	if !errors.Is(err, ErrTimeout) {
		t.Error("expected ErrTimeout to match")
	}
	if errors.Is(err, ErrCommandNotFound) {
		t.Error("did not expect ErrCommandNotFound to match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the wrapped cause to match")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedType ErrorType
	}{
		{"context deadline exceeded", context.DeadlineExceeded, ErrorTypeTimeout},
		{"exec not found", &exec.Error{Name: "yarn", Err: exec.ErrNotFound}, ErrorTypeCommandNotFound},
		{"exec permission denied", &exec.Error{Name: "npm", Err: errors.New("permission denied")}, ErrorTypePermissionDenied},
		{"exit error", &exec.ExitError{}, ErrorTypeExecution},
		{"message permission denied", errors.New("open: permission denied"), ErrorTypePermissionDenied},
		{"message not found", errors.New("yarn: not found"), ErrorTypeCommandNotFound},
		{"message timeout", errors.New("registry timeout"), ErrorTypeTimeout},
		{"message chdir", errors.New("chdir /nope"), ErrorTypeWorkingDirectory},
		{"anything else", errors.New("something else"), ErrorTypeExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyError(tt.err, "npm", []string{"install", "next"})
			if result == nil {
				t.Fatal("expected non-nil result")
			}
			if result.Type != tt.expectedType {
				t.Errorf("Type = %v, want %v", result.Type, tt.expectedType)
			}
			if result.Command != "npm" || len(result.Args) != 2 {
				t.Errorf("command not recorded: %+v", result)
			}
		})
	}

	if ClassifyError(nil, "npm", nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestClassifyError_RealExecErrors(t *testing.T) {
	cmd := exec.Command("pmbench-definitely-missing-12345")
	err := cmd.Run()
	if err == nil {
		t.Skip("command unexpectedly exists")
	}

	if result := ClassifyError(err, cmd.Path, nil); result.Type != ErrorTypeCommandNotFound {
		t.Errorf("expected command not found error, got %v", result.Type)
	}
}
