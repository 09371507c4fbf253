package xunit

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/psi/pkg/check"
	"github.com/dkoosis/psi/pkg/engine"
)

func TestBuilder_GroupsBySuiteInFirstSeenOrder(t *testing.T) {
	b := NewBuilder("")
	b.AddResult(engine.Result{Name: "B.one", Passed: true, Duration: time.Millisecond})
	b.AddResult(engine.Result{Name: "A.one", Passed: true})
	b.AddResult(engine.Result{Name: "B.two", Passed: false, Failures: []check.Failure{{Message: "x.go:3: FAILED\n  detail\n"}}})

	doc := b.Document()
	assert.Equal(t, "All", doc.Name)
	assert.Equal(t, 3, doc.Tests)
	assert.Equal(t, 1, doc.Failures)
	require.Len(t, doc.Suites, 2)
	assert.Equal(t, "B", doc.Suites[0].Name)
	assert.Equal(t, "A", doc.Suites[1].Name)

	bs := doc.Suites[0]
	assert.Equal(t, 2, bs.Tests)
	assert.Equal(t, 1, bs.Failures)
	assert.Equal(t, "0.001000", bs.Time)
	require.Len(t, bs.Cases, 2)
	assert.Equal(t, "one", bs.Cases[0].Name)
	assert.Equal(t, "B", bs.Cases[0].ClassName)
	assert.Nil(t, bs.Cases[0].Failure)

	f := bs.Cases[1].Failure
	require.NotNil(t, f)
	assert.Equal(t, "x.go:3: FAILED", f.Message)
	assert.Equal(t, "CHECK", f.Type)
	assert.Equal(t, "x.go:3: FAILED\n  detail", f.Body)
	assert.Equal(t, "fail", bs.Cases[1].Status)
}

func TestBuilder_AbortedCase(t *testing.T) {
	b := NewBuilder("All")
	b.AddResult(engine.Result{Name: "S.c", Aborted: true})

	c := b.Document().Suites[0].Cases[0]
	assert.Equal(t, "abort", c.Status)
	require.NotNil(t, c.Failure)
	assert.Equal(t, "REQUIRE", c.Failure.Type)
	assert.Equal(t, "aborted", c.Failure.Message)
}

func TestBuilder_NameWithoutSuite(t *testing.T) {
	b := NewBuilder("All")
	b.AddResult(engine.Result{Name: "plain", Passed: true})

	c := b.Document().Suites[0].Cases[0]
	assert.Equal(t, "plain", c.Name)
	assert.Equal(t, "plain", c.ClassName)
}

func TestBuilder_WriteToIsValidXML(t *testing.T) {
	b := NewBuilder("All")
	b.AddResult(engine.Result{Name: "S.<odd>&", Passed: false, Failures: []check.Failure{{Message: "a < b"}}})
	b.SetDuration(2 * time.Second)

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasPrefix(buf.String(), xml.Header))

	var doc Document
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.000000", doc.Time)
	assert.Equal(t, "<odd>&", doc.Suites[0].Cases[0].Name)
	assert.Equal(t, "a < b", doc.Suites[0].Cases[0].Failure.Body)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCollector_WritesOnRunFinished(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf)
	c.RunStarted(2, 2)
	c.TestStarted(0, "A.one")
	c.TestFinished(engine.Result{Name: "A.one", Passed: true})
	c.TestStarted(1, "A.two")
	c.TestFinished(engine.Result{Name: "A.two", Passed: true})
	assert.Zero(t, buf.Len(), "nothing is written before the run finishes")

	c.RunFinished(&engine.Stats{Duration: time.Second})
	require.NoError(t, c.Err())
	assert.Contains(t, buf.String(), `<testsuites tests="2" name="All" failures="0" time="1.000000">`)
	assert.Equal(t, 2, strings.Count(buf.String(), "<testcase "))
}

func TestCollector_WriteError(t *testing.T) {
	c := NewCollector(failWriter{})
	c.RunFinished(&engine.Stats{})
	assert.ErrorContains(t, c.Err(), "disk full")
}
