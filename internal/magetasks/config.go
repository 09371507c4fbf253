package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/psi"

	// BinPath is the output path for the self-test binary.
	BinPath = "./bin/psi-selftest"

	// ReportPath is where SelfTest writes its XML report.
	ReportPath = "./bin/psi-selftest.xml"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// Initialize sets up the magetasks package.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}

	binDir := filepath.Join(ProjectRoot, "bin")
	return os.MkdirAll(binDir, 0o750)
}
