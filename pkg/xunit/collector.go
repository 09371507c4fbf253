package xunit

import (
	"fmt"
	"io"

	"github.com/dkoosis/psi/pkg/engine"
)

// Collector is an engine.Observer that feeds every finished test into a
// Builder and writes the report when the run finishes.
type Collector struct {
	b   *Builder
	out io.Writer
	err error
}

var _ engine.Observer = (*Collector)(nil)

// NewCollector returns a collector writing its report to out.
func NewCollector(out io.Writer) *Collector {
	return &Collector{b: NewBuilder("All"), out: out}
}

func (c *Collector) RunStarted(_, _ int) {}

func (c *Collector) TestStarted(_ int, _ string) {}

func (c *Collector) TestFinished(r engine.Result) {
	c.b.AddResult(r)
}

func (c *Collector) RunFinished(s *engine.Stats) {
	c.b.SetDuration(s.Duration)
	if _, err := c.b.WriteTo(c.out); err != nil {
		c.err = fmt.Errorf("write xml report: %w", err)
	}
}

// Err returns the error from writing the report, if any.
func (c *Collector) Err() error { return c.err }

// Builder returns the underlying builder.
func (c *Collector) Builder() *Builder { return c.b }
