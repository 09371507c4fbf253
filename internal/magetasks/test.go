package magetasks

import (
	"fmt"
)

// TestAll runs all tests.
func TestAll() error {
	PrintH2Header("Tests")

	if err := Run("Go Test", "go", "test", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}

	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs tests with coverage.
func TestCoverage() error {
	PrintH2Header("Test Coverage")

	if err := Run("Go Test", "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}
	_ = Run("Coverage", "go", "tool", "cover", "-func=coverage.out")

	PrintSuccess("Coverage report generated")
	return nil
}

// TestRace runs tests with race detector.
func TestRace() error {
	PrintH2Header("Race Detector")

	if err := Run("Go Test", "go", "test", "-race", "./..."); err != nil {
		PrintError("Race detector found issues")
		return err
	}

	PrintSuccess("No race conditions detected")
	return nil
}

// SelfTest builds the self-test binary and runs it, writing an XML report.
func SelfTest() error {
	if err := BuildAll(); err != nil {
		return err
	}

	PrintH2Header("Self Test")

	if err := Run("psi", BinPath, "--time", "--output="+ReportPath); err != nil {
		PrintError("Self test reported failures")
		return err
	}

	PrintSuccess(fmt.Sprintf("Report written: %s", ReportPath))
	return nil
}
