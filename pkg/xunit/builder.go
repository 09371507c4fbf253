package xunit

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkoosis/psi/pkg/engine"
	"github.com/dkoosis/psi/pkg/registry"
)

// Builder constructs an XML report. Suites appear in order of first use and
// cases in the order they were added.
type Builder struct {
	doc       *Document
	index     map[string]int
	suiteTime []time.Duration
	total     time.Duration
}

// NewBuilder creates an empty report named name.
func NewBuilder(name string) *Builder {
	if name == "" {
		name = "All"
	}
	return &Builder{
		doc:   &Document{Name: name, Time: seconds(0)},
		index: make(map[string]int),
	}
}

// AddResult adds one run test to its suite. Suites appear in the order
// their first test was added and each holds its cases in the order added, so
// interleaved registrations are regrouped under one <testsuite> per suite.
func (b *Builder) AddResult(r engine.Result) *Builder {
	d := registry.Descriptor{Name: r.Name}
	suite, name := d.Suite(), d.Case()
	if name == "" {
		name = suite
	}

	i, ok := b.index[suite]
	if !ok {
		i = len(b.doc.Suites)
		b.index[suite] = i
		b.doc.Suites = append(b.doc.Suites, Suite{Name: suite})
		b.suiteTime = append(b.suiteTime, 0)
	}
	s := &b.doc.Suites[i]

	c := Case{
		Name:      name,
		ClassName: suite,
		Time:      seconds(r.Duration),
		Status:    r.Status(),
	}
	if !r.Passed {
		c.Failure = failure(r)
		s.Failures++
		b.doc.Failures++
	}
	s.Cases = append(s.Cases, c)
	s.Tests++
	b.suiteTime[i] += r.Duration
	s.Time = seconds(b.suiteTime[i])
	b.doc.Tests++
	b.total += r.Duration
	b.doc.Time = seconds(b.total)
	return b
}

// SetDuration overrides the total run time, which otherwise is the sum of
// the case durations.
func (b *Builder) SetDuration(d time.Duration) *Builder {
	b.total = d
	b.doc.Time = seconds(d)
	return b
}

// Document returns the constructed report.
func (b *Builder) Document() *Document {
	return b.doc
}

// WriteTo writes the report as indented XML with a declaration to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := xml.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.Write(data)
	sb.WriteByte('\n')
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func failure(r engine.Result) *Failure {
	f := &Failure{Message: "failed", Type: "CHECK"}
	if r.Aborted {
		f.Message = "aborted"
		f.Type = "REQUIRE"
	}
	var body []string
	for _, fl := range r.Failures {
		body = append(body, strings.TrimRight(fl.Message, "\n"))
	}
	if len(r.Failures) > 0 {
		f.Message = firstLine(r.Failures[0].Message)
	}
	f.Body = strings.Join(body, "\n")
	return f
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
