package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell commands")
	}
}

func TestNewCommandExecutor(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{"with valid timeout", 5 * time.Second, 5 * time.Second},
		{"with zero timeout", 0, 0},
		{"with negative timeout", -1 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := NewCommandExecutor(tt.timeout)
			if executor.defaultTimeout != tt.expectedTimeout {
				t.Errorf("expected timeout %v, got %v", tt.expectedTimeout, executor.defaultTimeout)
			}
		})
	}
}

func TestExecute_Success(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	result, err := executor.Execute(context.Background(), "echo", []string{"10.2.4"}, ExecOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Failed() {
		t.Fatalf("expected success, got %+v", result)
	}
	if strings.TrimSpace(result.Stdout) != "10.2.4" {
		t.Errorf("expected stdout '10.2.4', got %q", result.Stdout)
	}
}

func TestExecute_CommandNotFound(t *testing.T) {
	executor := NewCommandExecutor(0)

	result, err := executor.Execute(context.Background(), "pmbench-no-such-manager-12345", []string{"--version"}, ExecOptions{})
	if err != nil {
		t.Fatalf("Execute should not return error for command not found: %v", err)
	}

	if !result.Failed() || result.ExitCode != -1 {
		t.Errorf("expected failed result with exit code -1, got %+v", result)
	}
	if !errors.Is(result.Error, ErrCommandNotFound) {
		t.Errorf("error should match ErrCommandNotFound, got %v", result.Error)
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	result, err := executor.Execute(context.Background(), "sh", []string{"-c", "echo 'npm ERR! 404' >&2; exit 1"}, ExecOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("expected no error for non-zero exit, got %v", result.Error)
	}
	if !strings.Contains(result.Stderr, "npm ERR! 404") {
		t.Errorf("expected stderr to be captured, got %q", result.Stderr)
	}
	if !result.Failed() {
		t.Error("non-zero exit should count as failed")
	}
}

func TestExecute_Timeout(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	result, err := executor.Execute(context.Background(), "sleep", []string{"5"}, ExecOptions{
		Timeout: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.TimedOut {
		t.Error("expected command to time out")
	}
	if !errors.Is(result.Error, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", result.Error)
	}
}

func TestExecute_TimeoutKillsDescendants(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(300 * time.Millisecond)

	start := time.Now()
	result, err := executor.Execute(context.Background(), "sh", []string{"-c", "sleep 5; echo done"}, ExecOptions{})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed > 3*time.Second {
		t.Errorf("timeout of 300ms not enforced: blocked %v", elapsed)
	}
	if !result.TimedOut || !errors.Is(result.Error, ErrTimeout) {
		t.Errorf("expected a timeout, got %+v", result)
	}
	if strings.Contains(result.Stdout, "done") {
		t.Errorf("descendant should have been killed, got stdout %q", result.Stdout)
	}
}

func TestExecute_BackgroundDescendant(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	start := time.Now()
	result, err := executor.Execute(context.Background(), "sh", []string{"-c", "sleep 5 & echo started"}, ExecOptions{})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed > 3*time.Second {
		t.Errorf("waited on a background descendant for %v", elapsed)
	}
	if result.Failed() {
		t.Errorf("a clean exit should not fail, got %+v", result)
	}
	if !strings.Contains(result.Stdout, "started") {
		t.Errorf("expected output before exit to be captured, got %q", result.Stdout)
	}
}

func TestKillProcessTree(t *testing.T) {
	if err := killProcessTree(nil); err != nil {
		t.Errorf("nil command: %v", err)
	}
	if err := killProcessTree(&exec.Cmd{}); err != nil {
		t.Errorf("command without process: %v", err)
	}
}

func TestExecute_DefaultTimeout(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(100 * time.Millisecond)

	result, err := executor.Execute(context.Background(), "sleep", []string{"5"}, ExecOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.TimedOut {
		t.Error("expected the executor default timeout to apply")
	}
}

func TestExecute_Cancelled(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	result, err := executor.Execute(ctx, "sleep", []string{"5"}, ExecOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TimedOut {
		t.Error("cancellation should not be reported as a timeout")
	}
	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", result.Error)
	}
}

func TestExecute_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)
	tmpDir := t.TempDir()

	result, err := executor.Execute(context.Background(), "pwd", nil, ExecOptions{WorkingDir: tmpDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(strings.TrimSpace(result.Stdout), filepath.Base(tmpDir)) {
		t.Errorf("expected working directory %q in output, got %q", tmpDir, result.Stdout)
	}
}

func TestExecute_InvalidWorkingDirectory(t *testing.T) {
	executor := NewCommandExecutor(0)

	_, err := executor.Execute(context.Background(), "npm", []string{"--version"}, ExecOptions{
		WorkingDir: filepath.Join(t.TempDir(), "missing"),
	})
	if err == nil {
		t.Fatal("expected error for invalid working directory")
	}
	if !errors.Is(err, ErrInvalidWorkingDirectory) {
		t.Errorf("expected ErrInvalidWorkingDirectory, got %v", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected 'does not exist' in error, got %v", err)
	}
}

func TestResolveWorkingDir(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveWorkingDir(dir)
	if err != nil || got != dir {
		t.Errorf("ResolveWorkingDir(%q) = %q, %v", dir, got, err)
	}

	file := filepath.Join(dir, "package.json")
	if err := os.WriteFile(file, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveWorkingDir(file); !errors.Is(err, ErrInvalidWorkingDirectory) || !strings.Contains(err.Error(), "is not a directory") {
		t.Errorf("expected not-a-directory error, got %v", err)
	}
	if _, err := ResolveWorkingDir(filepath.Join(dir, "missing")); !errors.Is(err, ErrInvalidWorkingDirectory) {
		t.Errorf("expected ErrInvalidWorkingDirectory, got %v", err)
	}
}

func TestExecute_Environment(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	result, err := executor.Execute(context.Background(), "sh", []string{"-c", "echo $npm_config_registry"}, ExecOptions{
		Environment: []string{"npm_config_registry=http://localhost:4873"},
		InheritEnv:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Stdout, "http://localhost:4873") {
		t.Errorf("expected registry in output, got %q", result.Stdout)
	}
}

func TestExecute_EmptyCommand(t *testing.T) {
	executor := NewCommandExecutor(0)

	_, err := executor.Execute(context.Background(), "", nil, ExecOptions{})
	if err == nil || !strings.Contains(err.Error(), "command cannot be empty") {
		t.Errorf("expected 'command cannot be empty' error, got %v", err)
	}
}

func TestExecuteWithStreaming(t *testing.T) {
	skipOnWindows(t)
	executor := NewCommandExecutor(0)

	var stdout, stderr bytes.Buffer
	result, err := executor.ExecuteWithStreaming(context.Background(), "sh", []string{"-c", "echo added 1 package; echo warn >&2"},
		ExecOptions{}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "added 1 package") || !strings.Contains(result.Stdout, "added 1 package") {
		t.Errorf("stdout should be both streamed and captured: streamed %q, captured %q", stdout.String(), result.Stdout)
	}
	if !strings.Contains(stderr.String(), "warn") || !strings.Contains(result.Stderr, "warn") {
		t.Errorf("stderr should be both streamed and captured: streamed %q, captured %q", stderr.String(), result.Stderr)
	}
}

func TestPrepareEnvironment(t *testing.T) {
	executor := NewCommandExecutor(0)

	env := executor.prepareEnvironment(ExecOptions{
		Environment: []string{"A=1", "B=2", "A=3", "MALFORMED"},
	})

	got := make(map[string]string)
	for _, kv := range env {
		parts := strings.SplitN(kv, "=", 2)
		got[parts[0]] = parts[1]
	}

	if len(got) != 2 || got["A"] != "3" || got["B"] != "2" {
		t.Errorf("unexpected environment %v", env)
	}

	if env := executor.prepareEnvironment(ExecOptions{}); len(env) != 0 {
		t.Errorf("expected empty environment, got %v", env)
	}
}
