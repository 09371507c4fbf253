package live

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/psi/pkg/check"
	"github.com/dkoosis/psi/pkg/render"
)

const (
	barWidth = 30
	minName  = 10
)

type runStartedMsg struct{ toRun int }

type testStartedMsg struct{ name string }

type testFinishedMsg struct{ passed bool }

type runFinishedMsg struct{}

type model struct {
	theme    render.Theme
	spinner  spinner.Model
	bar      progress.Model
	width    int
	toRun    int
	done     int
	failed   int
	current  string
	finished bool
}

func newModel(theme render.Theme, width int) model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.Primary
	opts := []progress.Option{progress.WithWidth(barWidth), progress.WithoutPercentage()}
	if theme.Color {
		opts = append(opts, progress.WithSolidFill("10"))
	}
	bar := progress.New(opts...)
	if !theme.Color {
		bar.Full, bar.Empty = '#', '-'
	}
	return model{theme: theme, spinner: sp, bar: bar, width: width}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case runStartedMsg:
		m.toRun = msg.toRun
	case testStartedMsg:
		m.current = msg.name
	case testFinishedMsg:
		m.done++
		if !msg.passed {
			m.failed++
		}
		m.current = ""
	case runFinishedMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) ratio() float64 {
	if m.toRun == 0 {
		return 0
	}
	return float64(m.done) / float64(m.toRun)
}

func (m model) View() string {
	if m.finished {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.spinner.View())
	sb.WriteByte(' ')
	sb.WriteString(m.bar.ViewAs(m.ratio()))
	fmt.Fprintf(&sb, " %d/%d", m.done, m.toRun)
	if m.failed > 0 {
		sb.WriteByte(' ')
		sb.WriteString(m.theme.Paint(check.RoleFail, fmt.Sprintf("%s %d failed", m.theme.Icons.Fail, m.failed)))
	}
	if m.current != "" {
		sb.WriteString("  ")
		sb.WriteString(m.name())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// name returns the running test name cut to the space left after the bar.
func (m model) name() string {
	room := m.width - barWidth - 24
	if m.width <= 0 || room < minName {
		return m.current
	}
	return runewidth.Truncate(m.current, room, "…")
}
