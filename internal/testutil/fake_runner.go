package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bebsworthy/pmbench/internal/executor"
)

// FakeResponse scripts the outcome of one command line.
type FakeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// SpawnErr simulates a command that could not be started.
	SpawnErr error
	// Duration is added to the fake clock while the command "runs".
	Duration time.Duration
}

// FakeClock is a manually advanced time source.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeRunner returns scripted results instead of starting processes.
// Unscripted command lines exit with status 0 and no output.
type FakeRunner struct {
	mu        sync.Mutex
	Clock     *FakeClock
	responses map[string]FakeResponse
	calls     []string
}

// NewFakeRunner creates a FakeRunner with its own clock.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Clock:     NewFakeClock(),
		responses: make(map[string]FakeResponse),
	}
}

// On scripts the response for a full command line such as "npm install react".
func (f *FakeRunner) On(commandLine string, resp FakeResponse) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = resp
	return f
}

// Calls returns the command lines run so far, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Run implements the bench.CommandRunner interface.
func (f *FakeRunner) Run(ctx context.Context, command string, args []string) (*executor.ExecResult, error) {
	line := strings.Join(append([]string{command}, args...), " ")

	f.mu.Lock()
	f.calls = append(f.calls, line)
	resp := f.responses[line]
	f.mu.Unlock()

	if resp.SpawnErr != nil {
		return &executor.ExecResult{
			ExitCode: -1,
			Error:    executor.ClassifyError(resp.SpawnErr, command, args),
		}, nil
	}

	f.Clock.Advance(resp.Duration)
	return &executor.ExecResult{
		Stdout:   resp.Stdout,
		Stderr:   resp.Stderr,
		ExitCode: resp.ExitCode,
	}, nil
}
