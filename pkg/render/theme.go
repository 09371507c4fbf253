package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/psi/pkg/check"
)

// Theme defines colors and icons for console rendering.
type Theme struct {
	Name    string
	Color   bool
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Hint    lipgloss.Style
	Diff    lipgloss.Style
	Frame   lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Pass string
	Fail string
	Warn string
	Run  string
}

// DefaultTheme returns the bright theme used on colour terminals.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Name:    "default",
		Color:   true,
		Primary: r.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
		Success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("242")),
		Bold:    r.NewStyle().Bold(true),
		Hint:    r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Diff:    r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Frame:   r.NewStyle().Foreground(lipgloss.Color("6")),
		Icons:   ThemeIcons{Pass: "✓", Fail: "✗", Warn: "⚠", Run: "●"},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Name:    "orca",
		Color:   true,
		Primary: r.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success: r.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning: r.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Error:   r.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:    r.NewStyle().Bold(true),
		Hint:    r.NewStyle().Foreground(lipgloss.Color("109")),
		Diff:    r.NewStyle().Foreground(lipgloss.Color("179")).Underline(true),
		Frame:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Icons:   ThemeIcons{Pass: "✓", Fail: "✗", Warn: "!", Run: "·"},
	}
}

// MonoTheme returns a theme that writes text unchanged.
func MonoTheme() Theme {
	return Theme{
		Name:  "mono",
		Icons: ThemeIcons{Pass: "+", Fail: "x", Warn: "!", Run: "-"},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme. When color
// is false the mono theme is returned whatever the name.
func ThemeByName(name string, color bool, r *lipgloss.Renderer) Theme {
	if !color {
		return MonoTheme()
	}
	switch name {
	case "orca":
		return OrcaTheme(r)
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme(r)
	}
}

// style renders s with st unless the theme is monochrome.
func (t Theme) style(st lipgloss.Style, s string) string {
	if !t.Color {
		return s
	}
	return st.Render(s)
}

// Paint implements check.Palette.
func (t Theme) Paint(role check.Role, s string) string {
	switch role {
	case check.RoleFail:
		return t.style(t.Error, s)
	case check.RoleHint:
		return t.style(t.Hint, s)
	case check.RoleDiff:
		return t.style(t.Diff, s)
	case check.RoleFrame:
		return t.style(t.Frame, s)
	case check.RoleWarn:
		return t.style(t.Warning, s)
	default:
		return s
	}
}
