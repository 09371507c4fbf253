// psi-selftest runs psi's own example suite.
//
// Usage:
//
//	psi-selftest [--filter=Suite.*] [--output=report.xml] [--live]
//
// Every registered test is expected to pass; the exit status is the number
// of failed tests.
package main

import (
	"os"

	"github.com/dkoosis/psi"
)

func main() {
	os.Exit(psi.Main())
}
