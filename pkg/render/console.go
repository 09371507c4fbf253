// Package render writes run progress and results to the console.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/psi/pkg/engine"
)

const (
	bannerWidth  = 13 // "[ RUN      ] "
	summaryLabel = 28
	barWidth     = 40
)

// Options control what the console prints.
type Options struct {
	FailedOnly bool // suppress RUN and PASS lines
	NoSummary  bool // suppress the statistics block
	Width      int  // terminal width for truncating names; 0 disables
}

// Console renders engine events. It implements engine.Observer.
type Console struct {
	out   io.Writer
	theme Theme
	opts  Options
	num   *message.Printer
	names []string
}

var _ engine.Observer = (*Console)(nil)

// NewConsole returns a console writing to out.
func NewConsole(out io.Writer, theme Theme, opts Options) *Console {
	return &Console{
		out:   out,
		theme: theme,
		opts:  opts,
		num:   message.NewPrinter(language.English),
	}
}

// Theme returns the console theme, which is also the palette for failure
// reports written to the same stream.
func (c *Console) Theme() Theme { return c.theme }

func (c *Console) banner(text string, st func(string) string) string {
	return st("[" + text + "] ")
}

func (c *Console) ok(s string) string   { return c.theme.style(c.theme.Success, s) }
func (c *Console) bad(s string) string  { return c.theme.style(c.theme.Error, s) }
func (c *Console) bold(s string) string { return c.theme.style(c.theme.Bold, s) }
func (c *Console) warn(s string) string { return c.theme.style(c.theme.Warning, s) }

func (c *Console) name(s string) string {
	if c.opts.Width <= bannerWidth {
		return s
	}
	return runewidth.Truncate(s, c.opts.Width-bannerWidth, "…")
}

func (c *Console) count(n int) string {
	return c.num.Sprintf("%d", n)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// RunStarted prints the run banner.
func (c *Console) RunStarted(_, toRun int) {
	fmt.Fprintf(c.out, "%s%s\n", c.banner("==========", c.ok),
		c.bold(fmt.Sprintf("Running %s %s.", c.count(toRun), plural(toRun, "test", "tests"))))
}

// TestStarted prints the RUN line.
func (c *Console) TestStarted(index int, name string) {
	for len(c.names) <= index {
		c.names = append(c.names, "")
	}
	c.names[index] = name
	if c.opts.FailedOnly {
		return
	}
	fmt.Fprintf(c.out, "%s%s\n", c.banner(" RUN      ", c.ok), c.name(name))
}

// TestFinished prints the PASS or FAIL line.
func (c *Console) TestFinished(r engine.Result) {
	dur := FormatDuration(r.Duration)
	if !r.Passed {
		fmt.Fprintf(c.out, "%s%s (%s)\n", c.banner("   FAIL   ", c.bad), c.name(r.Name), dur)
		return
	}
	if c.opts.FailedOnly {
		return
	}
	fmt.Fprintf(c.out, "%s%s (%s)\n", c.banner("   PASS   ", c.ok), c.name(r.Name), dur)
}

// RunFinished prints totals, the summary block and the verdict.
func (c *Console) RunFinished(s *engine.Stats) {
	passed := s.Passed()
	fmt.Fprintf(c.out, "%s%s %s ran\n", c.banner("==========", c.ok), c.count(s.TotalRun), plural(s.TotalRun, "test", "tests"))
	fmt.Fprintf(c.out, "%s\n", c.ok(fmt.Sprintf("[  PASSED  ] %s %s", c.count(passed), plural(passed, "test", "tests"))))
	failedLine := fmt.Sprintf("[  FAILED  ] %s %s", c.count(s.TotalFailed), plural(s.TotalFailed, "test", "tests"))
	if s.TotalFailed > 0 {
		failedLine = c.bad(failedLine)
	}
	fmt.Fprintf(c.out, "%s\n", failedLine)
	if bar := c.bar(s); bar != "" {
		fmt.Fprintf(c.out, "%s\n", bar)
	}

	if !c.opts.NoSummary {
		fmt.Fprintf(c.out, "\n%s\n", c.bold("Summary:"))
		c.summaryRow("Total tests:", s.TotalRegistered)
		c.summaryRow("Total tests run:", s.TotalRun)
		c.summaryRow("Total warnings generated:", s.TotalWarnings)
		c.summaryRow("Total tests skipped:", s.TotalSkipped)
		c.summaryRow("Total tests failed:", s.TotalFailed)
	}

	elapsed := FormatDuration(s.Duration)
	switch {
	case s.TotalFailed > 0:
		fmt.Fprintf(c.out, "%s%s failed, %s passed in %s\n", c.bad("FAILED: "), c.count(s.TotalFailed), c.count(passed), elapsed)
		for _, idx := range s.FailedIndices {
			fmt.Fprintf(c.out, "%s\n", c.bad("  [ FAILED ] "+c.nameAt(idx, s)))
		}
	case s.TotalRegistered > 0:
		fmt.Fprintf(c.out, "%s%s %s passed in %s\n", c.ok("SUCCESS: "), c.count(passed), plural(passed, "test", "tests"), elapsed)
	default:
		fmt.Fprintf(c.out, "%sNo tests were found.\n", c.warn("WARNING: "))
	}
}

func (c *Console) summaryRow(label string, n int) {
	fmt.Fprintf(c.out, "    %s%s\n", runewidth.FillRight(label, summaryLabel), c.count(n))
}

// nameAt resolves a registry index to a name seen during the run.
func (c *Console) nameAt(idx int, s *engine.Stats) string {
	if idx < len(c.names) && c.names[idx] != "" {
		return c.names[idx]
	}
	for _, r := range s.Results {
		if r.Index == idx {
			return r.Name
		}
	}
	return fmt.Sprintf("#%d", idx)
}

// bar draws the pass ratio on colour terminals.
func (c *Console) bar(s *engine.Stats) string {
	if !c.theme.Color || s.TotalRun == 0 {
		return ""
	}
	fill := "10"
	if s.TotalFailed > 0 {
		fill = "9"
	}
	p := progress.New(progress.WithSolidFill(fill), progress.WithWidth(barWidth), progress.WithoutPercentage())
	ratio := float64(s.Passed()) / float64(s.TotalRun)
	return strings.Repeat(" ", bannerWidth) + p.ViewAs(ratio)
}

// List writes one name per line.
func List(w io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}
