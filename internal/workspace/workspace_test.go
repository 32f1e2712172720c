package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindRoot(nested))
	assert.Equal(t, root, FindRoot(root))
}

func TestFindRootGitFile(t *testing.T) {
	// worktrees carry a .git file instead of a directory
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: /elsewhere\n"), 0o600))
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindRoot(nested))
}

func TestFindRootNoRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	assert.Equal(t, dir, FindRoot(dir))
}

func TestInEditorTerminal(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "vscode")
	assert.True(t, InEditorTerminal())

	t.Setenv("TERM_PROGRAM", "VSCode")
	assert.True(t, InEditorTerminal())

	t.Setenv("TERM_PROGRAM", "iTerm.app")
	assert.False(t, InEditorTerminal())

	t.Setenv("TERM_PROGRAM", "")
	assert.False(t, InEditorTerminal())
}

func TestEditorOpenCommand(t *testing.T) {
	name, args := EditorOpenCommand("", "src/x.py", 42)
	assert.Equal(t, "code", name)
	assert.Equal(t, []string{"-r", "-g", "src/x.py:42"}, args)

	name, args = EditorOpenCommand("", "README.md", 0)
	assert.Equal(t, "code", name)
	assert.Equal(t, []string{"-r", "-g", "README.md"}, args)
}

func TestResolveEditor(t *testing.T) {
	orig := LookPath
	t.Cleanup(func() { LookPath = orig })

	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("EDITOR", "")

	assert.Equal(t, "emacsclient -n", ResolveEditor("emacsclient -n"))

	t.Setenv("TERM_PROGRAM", "vscode")
	assert.Equal(t, "code -r -g", ResolveEditor(""))

	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("EDITOR", "hx")
	assert.Equal(t, "hx", ResolveEditor(""))

	t.Setenv("EDITOR", "")
	LookPath = func(file string) (string, error) {
		if file == "nvim" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + file, nil
	}
	assert.Equal(t, "vi", ResolveEditor(""))

	LookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	assert.Equal(t, "nvim", ResolveEditor(""))
}

func TestEditorOpenCommandOverride(t *testing.T) {
	name, args := EditorOpenCommand("nvim", "a.go", 7)
	assert.Equal(t, "nvim", name)
	assert.Equal(t, []string{"a.go:7"}, args)

	name, args = EditorOpenCommand("code-insiders -r -g", "a.go", 0)
	assert.Equal(t, "code-insiders", name)
	assert.Equal(t, []string{"-r", "-g", "a.go"}, args)
}
