package engine

import (
	"time"

	"github.com/dkoosis/psi/pkg/check"
)

// Result is the outcome of one test that was run.
type Result struct {
	Index    int // registry index
	Name     string
	Passed   bool
	Aborted  bool
	Duration time.Duration
	Warnings int
	Failures []check.Failure
}

// Status returns "pass", "fail" or "abort".
func (r Result) Status() string {
	switch {
	case r.Passed:
		return "pass"
	case r.Aborted:
		return "abort"
	default:
		return "fail"
	}
}

// Stats aggregates one run. It is only written by the engine while running.
type Stats struct {
	TotalRegistered int
	TotalSkipped    int
	TotalRun        int
	TotalFailed     int
	TotalWarnings   int
	FailedIndices   []int
	Results         []Result
	Duration        time.Duration
}

// Passed returns the number of run tests that passed.
func (s *Stats) Passed() int {
	return s.TotalRun - s.TotalFailed
}

// MaxExitCode caps ExitCode so a failed run never wraps to a zero status.
const MaxExitCode = 255

// ExitCode returns the number of failed tests, capped at MaxExitCode; zero
// means success.
func (s *Stats) ExitCode() int {
	return min(s.TotalFailed, MaxExitCode)
}

// add folds one result into the totals.
func (s *Stats) add(r Result) {
	s.Results = append(s.Results, r)
	s.TotalWarnings += r.Warnings
	if !r.Passed {
		s.TotalFailed++
		s.FailedIndices = append(s.FailedIndices, r.Index)
	}
}
