// Package cli parses the command line of a test binary.
//
// Options are recognised by prefix, checked in a fixed order, and the first
// option whose name prefixes an argument wins: "--no-colour" is read as
// "--no-color", "--helpme" as "--help". Anything else is an error.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dkoosis/psi/internal/config"
	"github.com/dkoosis/psi/internal/version"
)

// ErrUnknownOption is returned for an argument no option recognises.
var ErrUnknownOption = errors.New("unrecognized option")

// Action is what the binary should do after parsing.
type Action int

const (
	// ActionRun runs the selected tests.
	ActionRun Action = iota
	// ActionHelp prints usage and exits.
	ActionHelp
	// ActionList prints the registered test names and exits.
	ActionList
)

func (a Action) String() string {
	switch a {
	case ActionHelp:
		return "help"
	case ActionList:
		return "list"
	default:
		return "run"
	}
}

// Command is a parsed command line.
type Command struct {
	Action Action
	Flags  config.CliFlags
}

type option struct {
	name  string
	apply func(c *Command, value string) error
}

// options in match order.
var options = []option{
	{"--help", func(c *Command, _ string) error {
		c.Action = ActionHelp
		return nil
	}},
	{"--failed-output-only", func(c *Command, _ string) error {
		c.Flags.FailedOutputOnly, c.Flags.FailedOutputOnlySet = true, true
		return nil
	}},
	{"--filter=", func(c *Command, v string) error {
		c.Flags.Filter, c.Flags.FilterSet = v, true
		return nil
	}},
	{"--output=", func(c *Command, v string) error {
		c.Flags.Output, c.Flags.OutputSet = v, true
		return nil
	}},
	{"--list", func(c *Command, _ string) error {
		if c.Action == ActionRun {
			c.Action = ActionList
		}
		return nil
	}},
	{"--no-color", func(c *Command, _ string) error {
		c.Flags.NoColor, c.Flags.NoColorSet = true, true
		return nil
	}},
	{"--no-summary", func(c *Command, _ string) error {
		c.Flags.NoSummary, c.Flags.NoSummarySet = true, true
		return nil
	}},
	{"--time", func(c *Command, v string) error {
		timer := strings.TrimPrefix(v, "=")
		if timer == "" || !strings.HasPrefix(v, "=") {
			timer = "real"
		}
		if timer != "real" && timer != "cpu" {
			return fmt.Errorf("invalid timer %q for --time (expected real or cpu)", timer)
		}
		c.Flags.Timer, c.Flags.TimerSet = timer, true
		return nil
	}},
	{"--live", func(c *Command, _ string) error {
		c.Flags.Live, c.Flags.LiveSet = true, true
		return nil
	}},
	{"--theme=", func(c *Command, v string) error {
		c.Flags.ThemeName = v
		return nil
	}},
}

// Parse reads args (without the program name). --help stops parsing at once;
// any unrecognised argument is an error wrapping ErrUnknownOption.
func Parse(args []string) (Command, error) {
	var c Command
	for _, arg := range args {
		opt, ok := match(arg)
		if !ok {
			return c, fmt.Errorf("%w: %s", ErrUnknownOption, arg)
		}
		if err := opt.apply(&c, arg[len(opt.name):]); err != nil {
			return c, err
		}
		if c.Action == ActionHelp {
			return c, nil
		}
	}
	return c, nil
}

func match(arg string) (option, bool) {
	for _, o := range options {
		if strings.HasPrefix(arg, o.name) {
			return o, true
		}
	}
	return option{}, false
}

// Usage writes the help text.
func Usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [options]\n", prog)
	fmt.Fprint(w, `
Run the registered unit tests. By default every test is run.

Options:
  --failed-output-only     Output only failed tests
  --filter=<filter>        Filter the tests to run (e.g. Suite1*.a
                             would run Suite1Case.a but not Suite1Case.b)
  --time                   Measure test duration (real time)
  --time=TIMER             Measure test duration, using given timer
                             (TIMER is one of 'real', 'cpu')
  --no-summary             Suppress printing of test results summary
  --output=<FILE>          Write an XUnit XML report to the given file
  --list                   List unit tests and exit
  --no-color               Disable coloured output
  --live                   Show an interactive progress view
  --theme=<name>           Colour theme: default, orca, mono
  --help                   Display this help and exit

The exit status is the number of failed tests, capped at 255, or 1 when
the command line or configuration is invalid.

Settings may also come from .psi.yaml and the PSI_FILTER, PSI_NO_COLOR,
NO_COLOR and PSI_DEBUG environment variables.
`)
	fmt.Fprintf(w, "\n%s\n", version.String())
}
