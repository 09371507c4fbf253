package psi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dkoosis/psi/internal/cli"
	"github.com/dkoosis/psi/internal/config"
	"github.com/dkoosis/psi/internal/log"
	"github.com/dkoosis/psi/pkg/engine"
	"github.com/dkoosis/psi/pkg/live"
	"github.com/dkoosis/psi/pkg/registry"
	"github.com/dkoosis/psi/pkg/render"
	"github.com/dkoosis/psi/pkg/xunit"
)

// ErrNoTests is reported when the registry is empty.
var ErrNoTests = errors.New("no tests were registered")

// Main runs the tests of the default registry with the process arguments and
// returns the exit status: the number of failed tests capped at 255, or 1 for
// a bad command line or an empty registry.
func Main() int {
	return Run(os.Args, os.Stdout, os.Stderr)
}

// Run is Main with explicit arguments (args[0] is the program name) and
// streams.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(registry.Default(), args, stdout, stderr)
}

func run(reg *registry.Registry, args []string, stdout, stderr io.Writer) int {
	prog := "psi"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	cmd, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", prog)
		return 1
	}
	if cmd.Action == cli.ActionHelp {
		cli.Usage(stdout, prog)
		return 0
	}
	if cmd.Action == cli.ActionList {
		render.List(stdout, reg.Names())
		return 0
	}

	logger := log.New(stderr, log.EnvEnabled())
	cfg, err := config.ResolveConfig(cmd.Flags, logger, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	if cfg.Debug {
		logger = log.New(stderr, true)
	}
	logger.Debug().
		Str("filter", cfg.Filter.String()).
		Str("filter_source", cfg.FilterSource).
		Bool("no_color", cfg.NoColor).
		Str("no_color_source", cfg.NoColorSource).
		Str("timer", cfg.Timer.String()).
		Str("theme", cfg.Theme).
		Msg("resolved config")

	tty := isTTYWriter(stdout)
	color := tty && !cfg.NoColor
	theme := render.ThemeByName(cfg.Theme, color, lipgloss.NewRenderer(stdout))
	opts := render.Options{
		FailedOnly: cfg.FailedOutputOnly,
		NoSummary:  cfg.NoSummary,
	}
	if tty {
		opts.Width = termWidth(stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var observers []engine.Option
	output := stdout

	var report *xunit.Collector
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			fmt.Fprintf(stdout, "WARNING: cannot open report file: %v\n", err)
		} else {
			defer f.Close()
			report = xunit.NewCollector(f)
		}
	}

	var view *live.View
	if cfg.Live && tty {
		view = live.New(ctx, stdout, theme, opts)
		output = view.Output()
		observers = append(observers, engine.WithObserver(view))
	} else {
		observers = append(observers, engine.WithObserver(render.NewConsole(stdout, theme, opts)))
	}
	if report != nil {
		observers = append(observers, engine.WithObserver(report))
	}

	e := engine.New(reg, engine.Options{Filter: cfg.Filter, Timer: cfg.Timer},
		append(observers,
			engine.WithOutput(output, theme),
			engine.WithLogger(logger),
		)...)

	if view != nil {
		view.Start()
	}
	stats, runErr := e.Run(ctx)
	if view != nil {
		if runErr != nil {
			stop()
		}
		if err := view.Wait(); err != nil {
			logger.Debug().Err(err).Msg("live view stopped")
		}
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", runErr)
		return max(stats.ExitCode(), 1)
	}
	if report != nil {
		if err := report.Err(); err != nil {
			fmt.Fprintf(stderr, "WARNING: %v\n", err)
		}
	}

	switch {
	case stats.TotalRegistered == 0:
		fmt.Fprintf(stderr, "ERROR: %v\n", ErrNoTests)
		return 1
	case stats.TotalRun == 0:
		fmt.Fprintf(stderr, "WARNING: filter %q matched none of %d tests\n", cfg.Filter.String(), stats.TotalRegistered)
	}
	return stats.ExitCode()
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width of w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
