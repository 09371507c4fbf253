package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dkoosis/psi/pkg/engine"
	"github.com/dkoosis/psi/pkg/filter"
)

// Environment variables consulted during resolution.
const (
	EnvNoColor = "PSI_NO_COLOR"
	EnvFilter  = "PSI_FILTER"
	EnvDebug   = "PSI_DEBUG"
)

// Source names where a resolved value came from.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// ResolvedConfig holds the final configuration of one run.
type ResolvedConfig struct {
	Filter           filter.Pattern
	Output           string
	NoColor          bool
	NoSummary        bool
	FailedOutputOnly bool
	Timer            engine.Timer
	Live             bool
	Theme            string
	Debug            bool

	// Resolution metadata (for debugging)
	FilterSource  string
	NoColorSource string
}

// ResolveConfig loads the config file and applies, from lowest to highest
// priority: defaults, file, environment, flags.
func ResolveConfig(cli CliFlags, log zerolog.Logger, warn io.Writer) (*ResolvedConfig, error) {
	return Resolve(LoadConfig(log, warn), cli)
}

// Resolve merges an already loaded file config with the environment and the
// flags.
func Resolve(appCfg *AppConfig, cli CliFlags) (*ResolvedConfig, error) {
	if appCfg == nil {
		appCfg = Defaults()
	}
	resolved := &ResolvedConfig{
		Output:           appCfg.Output,
		NoColor:          appCfg.NoColor,
		NoSummary:        appCfg.NoSummary,
		FailedOutputOnly: appCfg.FailedOutputOnly,
		Live:             appCfg.Live,
		Theme:            appCfg.Theme,
		Debug:            appCfg.Debug,
		FilterSource:     SourceDefault,
		NoColorSource:    SourceFile,
	}

	// Filter: CLI > ENV > file > default (match everything)
	switch {
	case cli.FilterSet:
		resolved.Filter = filter.Parse(cli.Filter)
		resolved.FilterSource = SourceCLI
	case os.Getenv(EnvFilter) != "":
		resolved.Filter = filter.Parse(os.Getenv(EnvFilter))
		resolved.FilterSource = SourceEnv
	case appCfg.Filter != nil:
		resolved.Filter = filter.Parse(*appCfg.Filter)
		resolved.FilterSource = SourceFile
	}

	// NoColor: CLI > ENV > file
	if cli.NoColorSet {
		resolved.NoColor = cli.NoColor
		resolved.NoColorSource = SourceCLI
	} else if env := getEnvBool(EnvNoColor, "NO_COLOR"); env != nil {
		resolved.NoColor = *env
		resolved.NoColorSource = SourceEnv
	}

	if os.Getenv(EnvDebug) != "" {
		resolved.Debug = true
	}
	if cli.OutputSet {
		resolved.Output = cli.Output
	}
	if cli.NoSummarySet {
		resolved.NoSummary = cli.NoSummary
	}
	if cli.FailedOutputOnlySet {
		resolved.FailedOutputOnly = cli.FailedOutputOnly
	}
	if cli.LiveSet {
		resolved.Live = cli.Live
	}
	if cli.ThemeName != "" {
		resolved.Theme = cli.ThemeName
	}

	timerName := appCfg.Timer
	if cli.TimerSet {
		timerName = cli.Timer
	}
	timer, err := engine.ParseTimer(timerName)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	resolved.Timer = timer

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
			// NO_COLOR convention: any non-empty value disables colour.
			if key == "NO_COLOR" {
				b := true
				return &b
			}
		}
	}
	return nil
}

var validThemes = map[string]bool{
	"default": true,
	"orca":    true,
	"mono":    true,
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if !validThemes[cfg.Theme] {
		return fmt.Errorf("invalid theme: %s (must be: default, orca, mono)", cfg.Theme)
	}
	if cfg.Live && cfg.FailedOutputOnly {
		return fmt.Errorf("live view cannot be combined with failed-output-only")
	}
	return nil
}
