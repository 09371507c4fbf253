// Package config handles configuration loading and merging for psi.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--filter, --output, --no-color, --no-summary, --time, etc.)
//  2. Environment variables (PSI_FILTER, PSI_NO_COLOR, NO_COLOR, PSI_DEBUG)
//  3. YAML config file (.psi.yaml in local directory or ~/.config/psi/.psi.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Keys
//
//	filter: "Suite.*"          # name pattern, '*' wildcard only
//	output: report.xml         # XML report path
//	no_color: false
//	no_summary: false
//	failed_output_only: false
//	timer: real                # real or cpu
//	live: false                # interactive progress view
//	theme: default             # default, orca or mono
//	debug: false
//
// An empty filter in the file is a real pattern that matches only the
// empty name; omit the key to run everything.
package config
