// Package testutil provides test helpers for the pmbench test suite.
//
// FakeRunner stands in for real package managers. Each command line is
// scripted with a FakeResponse, and the runner advances its FakeClock by
// the scripted duration so install timings are deterministic:
//
//	fake := testutil.NewFakeRunner().
//		On("npm --version", testutil.FakeResponse{Stdout: "9.0.0\n"}).
//		On("npm install alpha", testutil.FakeResponse{Duration: 120 * time.Millisecond}).
//		On("yarn add alpha", testutil.FakeResponse{ExitCode: 1, Stderr: "error"})
//
//	runner := bench.NewRunner(fake, os.Stdout).WithClock(fake.Clock.Now)
//
// Calls returns the command lines in the order they were run, which lets
// tests assert that installs happen one at a time in package order.
package testutil
