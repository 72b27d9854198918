// Package bench times package installs across npm and yarn.
//
// A Runner installs an ordered list of packages with one manager, one
// child process at a time, and reports a RunOutcome. The Orchestrator runs
// every manager in turn and concatenates the records of the runs that
// completed.
package bench

// InstallResult records one package install by one manager.
type InstallResult struct {
	Package        string `json:"package"`
	Manager        string `json:"manager"`
	ManagerVersion string `json:"manager_version"`
	// Time is the wall-clock duration of the install in milliseconds.
	Time int64 `json:"time"`
}

// RunOutcome is the result of benchmarking a single manager.
type RunOutcome struct {
	Manager string
	Version string
	// Results holds the records gathered before Err, if any, occurred.
	Results []InstallResult
	Err     error
}

// Succeeded reports whether every package was installed.
func (o RunOutcome) Succeeded() bool {
	return o.Err == nil
}

// Collect concatenates the records of successful runs in run order.
// Aborted runs contribute nothing. The result is never nil.
func Collect(outcomes []RunOutcome) []InstallResult {
	all := make([]InstallResult, 0)
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}
		all = append(all, outcome.Results...)
	}
	return all
}
