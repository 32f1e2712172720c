// Package workspace resolves where lazyfind runs and how results open.
package workspace

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LookPath is a package variable so tests can probe editor resolution
// without depending on what is installed.
var LookPath = exec.LookPath

// FindRoot walks upward from start until a directory containing a .git
// entry is found. When no repository marker exists the start directory is
// returned; an unresolvable root is never a hard error.
func FindRoot(start string) string {
	dir := filepath.Clean(start)
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// InEditorTerminal reports whether lazyfind runs inside an editor-provided
// terminal. Only VS Code advertises itself this way; the result decides
// whether accepted files open in the editor or print to stdout.
func InEditorTerminal() bool {
	return strings.EqualFold(os.Getenv("TERM_PROGRAM"), "vscode")
}

// ResolveEditor picks the editor command used to open selections.
// Resolution order: the configured override, the surrounding VS Code CLI,
// $EDITOR, then the first of nvim/vi found on PATH.
func ResolveEditor(override string) string {
	if override != "" {
		return override
	}
	if InEditorTerminal() {
		return "code -r -g"
	}
	if ed := strings.TrimSpace(os.Getenv("EDITOR")); ed != "" {
		return ed
	}
	for _, candidate := range []string{"nvim", "vi"} {
		if _, err := LookPath(candidate); err == nil {
			return candidate
		}
	}
	return "vi"
}

// EditorOpenCommand returns the command used to open path (with an optional
// 1-based line) in the surrounding editor window. It is only meaningful when
// InEditorTerminal is true. editor overrides the default `code -r -g`
// invocation; extra words in it become leading arguments.
func EditorOpenCommand(editor, path string, line int) (string, []string) {
	location := path
	if line > 0 {
		location = fmt.Sprintf("%s:%d", path, line)
	}

	if editor == "" {
		return "code", []string{"-r", "-g", location}
	}
	words := strings.Fields(editor)
	return words[0], append(words[1:], location)
}
