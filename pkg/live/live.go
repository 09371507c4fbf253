// Package live shows an interactive progress view while tests run.
//
// The view is a bubbletea program running on its own goroutine. The engine
// keeps running tests on the caller's goroutine and reaches the program only
// through messages, so test bodies never share state with the renderer.
// Per-test lines and failure reports are printed above the progress line in
// the order they were produced.
package live

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/psi/pkg/engine"
	"github.com/dkoosis/psi/pkg/render"
)

// sender is the part of *tea.Program the view talks to.
type sender interface {
	Send(msg tea.Msg)
}

// View is an engine.Observer that drives the live program. Console output
// for the run is routed through the program so it scrolls above the
// progress line.
type View struct {
	program *tea.Program
	send    sender
	console *render.Console
	out     *lineWriter
	done    chan struct{}
	err     error
}

var _ engine.Observer = (*View)(nil)

// New creates a view rendering to out. opts configure the console lines
// printed above the progress line.
func New(ctx context.Context, out io.Writer, theme render.Theme, opts render.Options) *View {
	p := tea.NewProgram(newModel(theme, opts.Width),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	v := newView(p, theme, opts)
	v.program = p
	return v
}

func newView(s sender, theme render.Theme, opts render.Options) *View {
	w := &lineWriter{send: s}
	return &View{
		send:    s,
		console: render.NewConsole(w, theme, opts),
		out:     w,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background.
func (v *View) Start() {
	go func() {
		defer close(v.done)
		if _, err := v.program.Run(); err != nil {
			v.err = fmt.Errorf("live view: %w", err)
		}
	}()
}

// Wait blocks until the program has exited.
func (v *View) Wait() error {
	<-v.done
	return v.err
}

// Output is where failure reports should be written during the run.
func (v *View) Output() io.Writer { return v.out }

// Console returns the console whose lines the view prints.
func (v *View) Console() *render.Console { return v.console }

func (v *View) RunStarted(registered, toRun int) {
	v.send.Send(runStartedMsg{toRun: toRun})
	v.console.RunStarted(registered, toRun)
}

func (v *View) TestStarted(index int, name string) {
	v.console.TestStarted(index, name)
	v.send.Send(testStartedMsg{name: name})
}

func (v *View) TestFinished(r engine.Result) {
	v.console.TestFinished(r)
	v.send.Send(testFinishedMsg{passed: r.Passed})
}

// RunFinished prints the summary and stops the program.
func (v *View) RunFinished(s *engine.Stats) {
	v.console.RunFinished(s)
	v.out.Flush()
	v.send.Send(runFinishedMsg{})
}

// lineWriter forwards complete lines to the program as print messages.
type lineWriter struct {
	mu   sync.Mutex
	send sender
	buf  bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(w.buf.Next(i + 1))
		w.print(line[:len(line)-1])
	}
	return len(p), nil
}

// Flush prints any partial line left in the buffer.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.print(w.buf.String())
		w.buf.Reset()
	}
}

// print sends the message tea.Println would produce, keeping it in order
// with the other messages instead of running it as a command.
func (w *lineWriter) print(line string) {
	w.send.Send(tea.Println(line)())
}
