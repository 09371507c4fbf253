package magetasks

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// IsCommandNotFound checks if the error indicates the command was not found.
// This handles exec.ErrNotFound and platform-specific string fallbacks.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	if strings.Contains(errStr, "executable file not found") {
		return true
	}
	return strings.Contains(errStr, "no such file or directory")
}

// Run executes name with args, streaming its output, and labels any failure.
func Run(label, name string, args ...string) error {
	fmt.Fprintf(Out, "%s: %s %s\n", label, name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdout = Out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}
