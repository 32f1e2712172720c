package selector

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/lazyfind/internal/config"
)

// LookPath is used to find executables in PATH. It's exposed as a package
// variable so tests can mock it and avoid depending on system binaries
// being installed.
var LookPath = exec.LookPath

// MissingToolError reports required external tools that are not installed.
type MissingToolError struct {
	Tools []string
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("missing required tools: %s", strings.Join(e.Tools, ", "))
}

// CheckTools verifies the external collaborators are on PATH before the
// interactive session starts. All missing tools are reported together.
func CheckTools(cfg *config.AppConfig) error {
	required := []string{cfg.FzfPath, cfg.RgPath, cfg.BatPath}

	var missing []string
	for _, tool := range required {
		if _, err := LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return &MissingToolError{Tools: missing}
	}
	return nil
}
