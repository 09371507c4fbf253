// Package log configures the debug logger shared by the runner.
//
// Debug output is off unless PSI_DEBUG is set or the config file enables it.
// Lines go to stderr so they never mix with the test report on stdout.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// EnvDebug enables debug logging when set to any non-empty value.
const EnvDebug = "PSI_DEBUG"

// EnvEnabled reports whether debug logging was requested via the environment.
func EnvEnabled() bool {
	return os.Getenv(EnvDebug) != ""
}

// New returns a console logger writing to w. A disabled logger drops every
// event without formatting it.
func New(w io.Writer, enabled bool) zerolog.Logger {
	if !enabled {
		return zerolog.Nop()
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}
	return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Str("component", "psi").Logger()
}
