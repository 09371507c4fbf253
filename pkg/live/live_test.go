package live

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/psi/pkg/engine"
	"github.com/dkoosis/psi/pkg/render"
)

type recorder struct {
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

// prints returns the messages that are not view state updates.
func (r *recorder) prints() []tea.Msg {
	var out []tea.Msg
	for _, m := range r.msgs {
		switch m.(type) {
		case runStartedMsg, testStartedMsg, testFinishedMsg, runFinishedMsg:
			continue
		}
		out = append(out, m)
	}
	return out
}

func printMsg(s string) tea.Msg { return tea.Println(s)() }

func TestModel_TracksProgress(t *testing.T) {
	m := newModel(render.MonoTheme(), 0)
	var tm tea.Model = m

	tm, _ = tm.Update(runStartedMsg{toRun: 4})
	tm, _ = tm.Update(testStartedMsg{name: "A.one"})
	view := tm.View()
	assert.Contains(t, view, "0/4")
	assert.Contains(t, view, "A.one")

	tm, _ = tm.Update(testFinishedMsg{passed: true})
	tm, _ = tm.Update(testStartedMsg{name: "A.two"})
	tm, _ = tm.Update(testFinishedMsg{passed: false})
	view = tm.View()
	assert.Contains(t, view, "2/4")
	assert.Contains(t, view, "x 1 failed")
	assert.NotContains(t, view, "A.two")
	assert.Equal(t, 15, strings.Count(view, "#"), "half of the bar is filled")

	tm, cmd := tm.Update(runFinishedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, tm.View())
}

func TestModel_TruncatesName(t *testing.T) {
	m := newModel(render.MonoTheme(), 70)
	m.current = strings.Repeat("n", 40)
	assert.Equal(t, strings.Repeat("n", 15)+"…", m.name())

	m.width = 40
	assert.Equal(t, m.current, m.name(), "too narrow to truncate sensibly")
}

func TestModel_WindowSize(t *testing.T) {
	var tm tea.Model = newModel(render.MonoTheme(), 0)
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, tm.(model).width)
}

func TestLineWriter_SplitsLines(t *testing.T) {
	rec := &recorder{}
	w := &lineWriter{send: rec}

	_, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ond\nthird"))
	require.NoError(t, err)
	assert.Len(t, rec.msgs, 2)

	w.Flush()
	assert.Equal(t, []tea.Msg{printMsg("first"), printMsg("second"), printMsg("third")}, rec.prints())
}

func TestView_ForwardsEventsInOrder(t *testing.T) {
	rec := &recorder{}
	v := newView(rec, render.MonoTheme(), render.Options{NoSummary: true})

	v.RunStarted(1, 1)
	v.TestStarted(0, "A.one")
	fmt.Fprint(v.Output(), "failure detail\n")
	r := engine.Result{Index: 0, Name: "A.one", Passed: false}
	v.TestFinished(r)
	v.RunFinished(&engine.Stats{TotalRegistered: 1, TotalRun: 1, TotalFailed: 1, FailedIndices: []int{0}, Results: []engine.Result{r}})

	require.NotEmpty(t, rec.msgs)
	assert.Equal(t, runStartedMsg{toRun: 1}, rec.msgs[0])
	assert.Equal(t, runFinishedMsg{}, rec.msgs[len(rec.msgs)-1])

	lines := rec.prints()
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, printMsg("[==========] Running 1 test."), lines[0])
	assert.Equal(t, printMsg("[ RUN      ] A.one"), lines[1])
	assert.Equal(t, printMsg("failure detail"), lines[2])
	assert.Equal(t, printMsg("[   FAIL   ] A.one (0ns)"), lines[3])
}
