// Package engine runs registered tests in order, applies the name filter and
// aggregates results.
//
// A run moves through Idle, Configuring, Running, Reporting and Done. Tests
// run one at a time on the caller's goroutine. A failed Require ends only the
// test that raised it; the engine always continues with the next test.
package engine

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/dkoosis/psi/pkg/check"
	"github.com/dkoosis/psi/pkg/filter"
	"github.com/dkoosis/psi/pkg/registry"
)

// Phase is the engine's position in a run.
type Phase int

const (
	Idle Phase = iota
	Configuring
	Running
	Reporting
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Configuring:
		return "configuring"
	case Running:
		return "running"
	case Reporting:
		return "reporting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configure a run.
type Options struct {
	Filter filter.Pattern
	Timer  Timer
}

// Engine executes the tests of one registry.
type Engine struct {
	reg       *registry.Registry
	opts      Options
	out       io.Writer
	palette   check.Palette
	observers Observers
	clock     Clock
	log       zerolog.Logger
	phase     Phase
}

// Option customises an Engine.
type Option func(*Engine)

// WithOutput sets where failure reports are written and how they are painted.
func WithOutput(w io.Writer, p check.Palette) Option {
	return func(e *Engine) {
		e.out = w
		e.palette = p
	}
}

// WithObserver adds an observer. Observers are notified in the order added.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithClock replaces the clock selected by Options.Timer.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an idle engine over reg.
func New(reg *registry.Registry, opts Options, options ...Option) *Engine {
	e := &Engine{
		reg:     reg,
		opts:    opts,
		out:     io.Discard,
		palette: check.Plain,
		log:     zerolog.Nop(),
	}
	for _, o := range options {
		o(e)
	}
	if e.clock == nil {
		e.clock = NewClock(opts.Timer)
	}
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Run executes every selected test once and returns the statistics. The
// context is consulted between tests only; a cancelled run returns the
// statistics gathered so far together with the context error.
func (e *Engine) Run(ctx context.Context) (*Stats, error) {
	e.phase = Configuring
	tests := e.reg.All()
	names := make([]string, len(tests))
	for i, d := range tests {
		names[i] = d.Name
	}
	skipped := filter.Count(e.opts.Filter, names)
	stats := &Stats{
		TotalRegistered: len(tests),
		TotalSkipped:    skipped,
		TotalRun:        len(tests) - skipped,
	}
	e.log.Debug().
		Int("registered", stats.TotalRegistered).
		Int("skipped", skipped).
		Str("filter", e.opts.Filter.String()).
		Str("timer", e.opts.Timer.String()).
		Msg("configured run")

	strayBefore := check.StrayWarnings()
	e.phase = Running
	e.observers.RunStarted(stats.TotalRegistered, stats.TotalRun)
	start := e.clock.Now()

	for i, d := range tests {
		if err := ctx.Err(); err != nil {
			e.log.Debug().Err(err).Int("index", i).Msg("run cancelled")
			stats.Duration = e.clock.Now() - start
			e.phase = Done
			return stats, fmt.Errorf("run cancelled before %s: %w", d.Name, err)
		}
		if filter.Skipped(e.opts.Filter, d.Name) {
			continue
		}
		e.observers.TestStarted(i, d.Name)
		r := e.invoke(i, d)
		stats.add(r)
		e.log.Debug().
			Int("index", i).
			Str("test", d.Name).
			Str("status", r.Status()).
			Dur("duration", r.Duration).
			Msg("test finished")
		e.observers.TestFinished(r)
	}

	e.phase = Reporting
	stats.Duration = e.clock.Now() - start
	stats.TotalWarnings += int(check.StrayWarnings() - strayBefore)
	e.observers.RunFinished(stats)
	e.phase = Done
	e.log.Debug().Int("failed", stats.TotalFailed).Dur("duration", stats.Duration).Msg("run done")
	return stats, nil
}

// invoke runs one test body with fresh state and measures it.
func (e *Engine) invoke(index int, d registry.Descriptor) Result {
	t := check.New(d.Name, e.out, e.palette)
	t.Begin()
	start := e.clock.Now()
	call(t, d.Body)
	elapsed := e.clock.Now() - start
	st := t.End()

	return Result{
		Index:    index,
		Name:     d.Name,
		Passed:   !st.Failed,
		Aborted:  st.AbortRequested,
		Duration: elapsed,
		Warnings: t.Warnings(),
		Failures: t.Failures(),
	}
}

// call invokes body, absorbing a Require abort. Any other panic is recorded
// as a failure of this test.
func call(t *check.T, body registry.Body) {
	defer func() {
		r := recover()
		if r == nil || check.IsAbort(r) {
			return
		}
		t.RecordPanic(r, debug.Stack())
	}()
	body(t)
}
