// Package history resolves the per-mode query history files handed to the
// selector's --history option.
package history

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/chmouel/lazyfind/internal/models"
)

const appDirName = "lazyfind"

// FileForMode returns the history file path for a mode, creating parent
// directories as needed. Each mode keeps its own history so file-name
// queries do not pollute grep history.
func FileForMode(mode models.Mode) (string, error) {
	path, err := xdg.DataFile(filepath.Join(appDirName, fmt.Sprintf("%s_history", mode)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve history file for %s: %w", mode, err)
	}
	return path, nil
}
