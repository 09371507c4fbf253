package magetasks

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BuildAll builds the self-test binary with version information baked in.
func BuildAll() error {
	PrintH2Header("Build")

	if err := Run("Go Build", "go", "build", "-ldflags", ldflags(getGitVersion(), getGitCommit(), time.Now()),
		"-o", BinPath, "./cmd/psi-selftest"); err != nil {
		PrintError("Build failed")
		return err
	}

	PrintSuccess(fmt.Sprintf("Built: %s", BinPath))
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	PrintH2Header("Clean")

	if err := os.RemoveAll("./bin"); err != nil {
		return err
	}
	_ = os.Remove("coverage.out")

	PrintSuccess("Cleaned build artifacts")
	return nil
}

func ldflags(version, commit string, built time.Time) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, built.UTC().Format(time.RFC3339))
}

func getGitVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty", "--match=v*").Output()
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(string(out))
}

func getGitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
