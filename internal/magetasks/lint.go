package magetasks

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LintAll runs all linters.
func LintAll() error {
	var errs []error

	if err := LintFormat(); err != nil {
		errs = append(errs, err)
	}

	if err := LintVet(); err != nil {
		errs = append(errs, err)
	}

	if err := LintStaticcheck(); err != nil {
		if !IsCommandNotFound(err) {
			errs = append(errs, err)
		}
	}

	if err := LintGolangci(); err != nil {
		if !IsCommandNotFound(err) {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	PrintSuccess("All linters passed")
	return nil
}

// LintFormat fails when gofmt would rewrite any file.
func LintFormat() error {
	out, err := exec.Command("gofmt", "-l", ".").Output()
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	files := unformatted(string(out))
	if len(files) > 0 {
		PrintWarning("Unformatted files:\n" + strings.Join(files, "\n"))
		return fmt.Errorf("gofmt: %d files need formatting", len(files))
	}
	return nil
}

// unformatted filters gofmt -l output down to files the go tool would build.
func unformatted(out string) []string {
	var files []string
	for _, f := range strings.Split(out, "\n") {
		f = strings.TrimSpace(f)
		if f == "" || strings.HasPrefix(f, "_") || strings.HasPrefix(f, ".") {
			continue
		}
		files = append(files, f)
	}
	return files
}

// LintVet runs go vet.
func LintVet() error {
	return Run("Go Vet", "go", "vet", "./...")
}

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error {
	if err := Run("Staticcheck", "staticcheck", "./..."); err != nil {
		if IsCommandNotFound(err) {
			PrintWarning("Staticcheck not found (install: go install honnef.co/go/tools/cmd/staticcheck@latest)")
			return err
		}
		return fmt.Errorf("staticcheck failed: %w", err)
	}
	return nil
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	if err := Run("Golangci-lint", "golangci-lint", "run",
		"--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,forcetypeassert",
		"--timeout=5m",
		"./..."); err != nil {
		if IsCommandNotFound(err) {
			PrintWarning("Golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
			return err
		}
		return fmt.Errorf("golangci-lint failed: %w", err)
	}
	return nil
}
