// Package check holds the per-test execution state and the failure model
// shared by every assertion: a Check failure marks the running test failed and
// lets its body continue; a Require failure also stops the body at once.
//
// A Require stops the body by panicking with a private signal that only the
// engine recovers, so the abort never escapes the test being run. Assertions
// evaluated when no test is running have nothing to attribute the failure to
// and terminate the process through Fatal.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dkoosis/psi/pkg/source"
)

var (
	// ErrOutsideTest is passed to Fatal when an assertion runs without a test.
	ErrOutsideTest = errors.New("assertion evaluated outside of a running test")
	// ErrNegativeLength is passed to Fatal when a bounded comparison gets n < 0.
	ErrNegativeLength = errors.New("length argument cannot be negative")
)

// Fatal terminates the process. It is a variable so tests of the failure
// model can observe misuse without exiting.
var Fatal = func(err error) {
	fmt.Fprintf(os.Stderr, "psi: fatal: %v\n", err)
	os.Exit(1)
}

// Level is the severity of an assertion.
type Level int

const (
	// LevelCheck records a failure and continues.
	LevelCheck Level = iota
	// LevelRequire records a failure and aborts the current test.
	LevelRequire
)

func (l Level) String() string {
	if l == LevelRequire {
		return "REQUIRE"
	}
	return "CHECK"
}

// State is the observable execution state of one test.
type State struct {
	InsideTest     bool
	Failed         bool
	AbortRequested bool
}

// Failure is one recorded assertion failure.
type Failure struct {
	Site    source.Site
	Level   Level
	Call    string
	Message string // uncoloured failure block
}

type abortSignal struct{}

// IsAbort reports whether a recovered panic value is a Require abort.
func IsAbort(r any) bool {
	_, ok := r.(abortSignal)
	return ok
}

var strayWarnings atomic.Int64

// StrayWarnings returns how many warnings were raised outside any test.
func StrayWarnings() int64 {
	return strayWarnings.Load()
}

// StrayOutput receives warnings raised outside any test.
var StrayOutput io.Writer = os.Stdout

// T is the handle a test body receives. A T is owned by the engine for the
// duration of one invocation; it must not be retained past it.
type T struct {
	name     string
	state    State
	out      io.Writer
	palette  Palette
	failures []Failure
	warnings int
}

// New returns an idle T that writes failure reports to out.
func New(name string, out io.Writer, p Palette) *T {
	if out == nil {
		out = io.Discard
	}
	if p == nil {
		p = Plain
	}
	return &T{name: name, out: out, palette: p}
}

// Begin resets the state for a fresh invocation and marks the test running.
func (t *T) Begin() {
	t.state = State{InsideTest: true}
	t.failures = nil
	t.warnings = 0
}

// End marks the test finished and returns the final state.
func (t *T) End() State {
	t.state.InsideTest = false
	return t.state
}

// Name returns the registered test name.
func (t *T) Name() string { return t.name }

// State returns a snapshot of the execution state.
func (t *T) State() State { return t.state }

// Failed reports whether any assertion has failed so far.
func (t *T) Failed() bool { return t.state.Failed }

// Aborted reports whether a Require failure stopped the body.
func (t *T) Aborted() bool { return t.state.AbortRequested }

// Failures returns the recorded failures in order.
func (t *T) Failures() []Failure { return t.failures }

// Warnings returns the number of warnings raised by this test.
func (t *T) Warnings() int { return t.warnings }

// Palette returns the palette failure reports are painted with.
func (t *T) Palette() Palette { return t.palette }

// Guard terminates the process unless t is running a test.
func (t *T) Guard() {
	if t == nil || !t.state.InsideTest {
		Fatal(ErrOutsideTest)
		// Fatal replaced by a hook that returned: still refuse to continue.
		panic(ErrOutsideTest)
	}
}

// Record reports a failed assertion at site. The block is written to the
// test output immediately. For LevelRequire Record does not return.
func (t *T) Record(level Level, site source.Site, call string, b *Block) {
	t.Guard()
	io.WriteString(t.out, b.Paint(t.palette))
	t.failures = append(t.failures, Failure{
		Site:    site,
		Level:   level,
		Call:    call,
		Message: b.Paint(Plain),
	})
	t.state.Failed = true
	if level == LevelRequire {
		t.state.AbortRequested = true
		panic(abortSignal{})
	}
}

// Fail marks the test failed without a message and continues.
func (t *T) Fail() {
	site := source.Locate(1)
	t.Record(LevelCheck, site, "Fail", NewBlock().Location(site).Fail("FAILED").Line())
}

// FailNow marks the test failed and stops its body.
func (t *T) FailNow() {
	site := source.Locate(1)
	t.Record(LevelRequire, site, "FailNow", NewBlock().Location(site).Fail("FAILED").Line())
}

// Logf writes a formatted line to the test output.
func (t *T) Logf(format string, args ...any) {
	t.Guard()
	fmt.Fprintf(t.out, format+"\n", args...)
}

// Warn raises a warning at site. Warnings are counted but never fail a test,
// and may be raised outside a test.
func (t *T) Warn(site source.Site, msg string) {
	b := NewBlock().Add(RoleWarn, site.String()+":").Line().Add(RoleWarn, "WARNING: "+msg).Line()
	if t == nil || !t.state.InsideTest {
		strayWarnings.Add(1)
		io.WriteString(StrayOutput, b.Paint(Plain))
		return
	}
	t.warnings++
	io.WriteString(t.out, b.Paint(t.palette))
}

// RecordPanic records a panic that escaped the body as a failure that ended
// the test.
func (t *T) RecordPanic(v any, stack []byte) {
	b := NewBlock().Add(RolePlain, t.name+": ").Fail("PANIC").Line().
		Add(RolePlain, fmt.Sprintf("  %v", v)).Line()
	if len(stack) > 0 {
		b.Add(RoleHint, string(stack)).Line()
	}
	io.WriteString(t.out, b.Paint(t.palette))
	t.failures = append(t.failures, Failure{Level: LevelRequire, Call: "panic", Message: b.Paint(Plain)})
	t.state.Failed = true
	t.state.AbortRequested = true
}
