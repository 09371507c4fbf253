package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = ".psi.yaml"

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	Filter           string
	Output           string
	NoColor          bool
	NoSummary        bool
	FailedOutputOnly bool
	Timer            string
	Live             bool
	ThemeName        string

	// Flags to track if they were explicitly set by the user
	FilterSet           bool
	OutputSet           bool
	NoColorSet          bool
	NoSummarySet        bool
	FailedOutputOnlySet bool
	TimerSet            bool
	LiveSet             bool
}

// AppConfig represents the contents of .psi.yaml.
type AppConfig struct {
	Filter           *string `yaml:"filter"`
	Output           string  `yaml:"output"`
	NoColor          bool    `yaml:"no_color"`
	NoSummary        bool    `yaml:"no_summary"`
	FailedOutputOnly bool    `yaml:"failed_output_only"`
	Timer            string  `yaml:"timer"`
	Live             bool    `yaml:"live"`
	Theme            string  `yaml:"theme"`
	Debug            bool    `yaml:"debug"`
}

// Constants for default values.
const (
	DefaultTimer = "real"
	DefaultTheme = "default"
)

// Defaults returns the configuration used when no file is present.
func Defaults() *AppConfig {
	return &AppConfig{
		Timer: DefaultTimer,
		Theme: DefaultTheme,
	}
}

// LoadConfig loads .psi.yaml from the working directory or the user config
// directory. A missing file yields the defaults; a malformed file is reported
// on warn and also yields the defaults.
func LoadConfig(log zerolog.Logger, warn io.Writer) *AppConfig {
	appCfg := Defaults()

	configPath := getConfigPath(log)
	if configPath == "" {
		log.Debug().Msg("no config file found, using defaults")
		return appCfg
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		fmt.Fprintf(warn, "Warning: %v. Using defaults.\n", err)
		return appCfg
	}
	log.Debug().Str("path", configPath).Msg("loaded config file")
	return loaded
}

// LoadFile parses one config file and merges it onto the defaults.
func LoadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fromFile AppConfig
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	appCfg := Defaults()
	appCfg.Filter = fromFile.Filter
	appCfg.Output = fromFile.Output
	appCfg.NoColor = fromFile.NoColor
	appCfg.NoSummary = fromFile.NoSummary
	appCfg.FailedOutputOnly = fromFile.FailedOutputOnly
	appCfg.Live = fromFile.Live
	appCfg.Debug = fromFile.Debug
	if fromFile.Timer != "" {
		appCfg.Timer = fromFile.Timer
	}
	if fromFile.Theme != "" {
		appCfg.Theme = fromFile.Theme
	}
	return appCfg, nil
}

// getConfigPath tries to find the .psi.yaml configuration file.
// It checks local directory first, then XDG UserConfigDir (if valid).
func getConfigPath(log zerolog.Logger) string {
	if _, err := os.Stat(FileName); err == nil {
		abs, _ := filepath.Abs(FileName)
		log.Debug().Str("path", abs).Msg("using local config file")
		return FileName
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir is not usable for the XDG layout.
	if err != nil || configHome == "" || configHome == "/" {
		log.Debug().Err(err).Str("dir", configHome).Msg("user config dir unsuitable")
		return ""
	}
	xdgPath := filepath.Join(configHome, "psi", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		log.Debug().Str("path", xdgPath).Msg("using XDG config file")
		return xdgPath
	}
	log.Debug().Str("path", xdgPath).Msg("XDG config file not found")
	return ""
}
