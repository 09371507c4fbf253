// Package magetasks provides the build, test, and lint tasks used by the
// psi Magefile.
//
// Each task prints a section header, runs one or more go commands, and
// reports success or failure on Out. Optional tools such as staticcheck
// are skipped with a warning when they are not installed.
package magetasks
