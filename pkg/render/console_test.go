package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/psi/pkg/check"
	"github.com/dkoosis/psi/pkg/engine"
)

func runThrough(c *Console, results []engine.Result, registered int) *engine.Stats {
	s := &engine.Stats{TotalRegistered: registered, TotalRun: len(results), TotalSkipped: registered - len(results)}
	c.RunStarted(registered, len(results))
	for _, r := range results {
		c.TestStarted(r.Index, r.Name)
		c.TestFinished(r)
		s.Results = append(s.Results, r)
		if !r.Passed {
			s.TotalFailed++
			s.FailedIndices = append(s.FailedIndices, r.Index)
		}
	}
	c.RunFinished(s)
	return s
}

func TestConsole_PassingRun(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, MonoTheme(), Options{})
	runThrough(c, []engine.Result{
		{Index: 0, Name: "A.one", Passed: true, Duration: 1500 * time.Nanosecond},
		{Index: 1, Name: "A.two", Passed: true, Duration: 20 * time.Nanosecond},
	}, 3)

	got := out.String()
	assert.Contains(t, got, "[==========] Running 2 tests.\n")
	assert.Contains(t, got, "[ RUN      ] A.one\n")
	assert.Contains(t, got, "[   PASS   ] A.one (1.50us)\n")
	assert.Contains(t, got, "[   PASS   ] A.two (20ns)\n")
	assert.Contains(t, got, "[  PASSED  ] 2 tests\n")
	assert.Contains(t, got, "[  FAILED  ] 0 tests\n")
	assert.Contains(t, got, "Total tests skipped:        1\n")
	assert.Contains(t, got, "SUCCESS: 2 tests passed in")
	assert.NotContains(t, got, "\x1b[", "mono theme must not emit escapes")
}

func TestConsole_FailedOnlySuppressesPassLines(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, MonoTheme(), Options{FailedOnly: true})
	runThrough(c, []engine.Result{
		{Index: 0, Name: "A.one", Passed: true},
		{Index: 1, Name: "A.two", Passed: false},
	}, 2)

	got := out.String()
	assert.NotContains(t, got, "RUN")
	assert.NotContains(t, got, "PASS   ]")
	assert.Contains(t, got, "[   FAIL   ] A.two (0ns)\n")
	assert.Contains(t, got, "FAILED: 1 failed, 1 passed in")
	assert.Contains(t, got, "  [ FAILED ] A.two\n")
}

func TestConsole_NoSummary(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, MonoTheme(), Options{NoSummary: true})
	runThrough(c, []engine.Result{{Index: 0, Name: "A.one", Passed: true}}, 1)

	assert.NotContains(t, out.String(), "Summary:")
	assert.Contains(t, out.String(), "SUCCESS: 1 test passed")
}

func TestConsole_NoTestsWarning(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, MonoTheme(), Options{})
	runThrough(c, nil, 0)
	assert.Contains(t, out.String(), "WARNING: No tests were found.")
}

func TestConsole_LargeCountsUseSeparators(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, MonoTheme(), Options{})
	c.RunStarted(1234, 1234)
	assert.Equal(t, "[==========] Running 1,234 tests.\n", out.String())
}

func TestConsole_TruncatesLongNames(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, MonoTheme(), Options{Width: 20})
	c.TestStarted(0, "Suite.AVeryLongCaseName")

	line := strings.TrimSuffix(out.String(), "\n")
	assert.LessOrEqual(t, len([]rune(line)), 20)
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestConsole_ColorThemeAddsBar(t *testing.T) {
	var out bytes.Buffer
	theme := MonoTheme()
	theme.Color = true
	c := NewConsole(&out, theme, Options{NoSummary: true})
	runThrough(c, []engine.Result{{Index: 0, Name: "A.one", Passed: true}}, 1)

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Contains(t, out.String(), "█")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ns"},
		{7, "7ns"},
		{99, "99ns"},
		{100, "0.10us"},
		{12346, "12.35us"},
		{123456, "0.12ms"},
		{12345678, "12.35ms"},
		{123456789, "0.12s"},
		{3 * time.Second, "3.00s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), tt.in.String())
	}
}

func TestTheme_Paint(t *testing.T) {
	mono := MonoTheme()
	assert.Equal(t, "FAILED", mono.Paint(check.RoleFail, "FAILED"))

	assert.Equal(t, "mono", ThemeByName("default", false, nil).Name)
	assert.Equal(t, "orca", ThemeByName("orca", true, nil).Name)
	assert.Equal(t, "default", ThemeByName("unknown", true, nil).Name)
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	List(&out, []string{"A.one", "A.two", "B.one"})
	assert.Equal(t, "A.one\nA.two\nB.one\n", out.String())
}
