// Package dispatch handles the line the user accepted in the selector:
// parsing it into a candidate for its mode, then opening it in the editor,
// printing it, or copying it to the clipboard.
package dispatch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/chmouel/lazyfind/internal/log"
	"github.com/chmouel/lazyfind/internal/models"
	"github.com/chmouel/lazyfind/internal/workspace"
)

// ParseError reports a candidate line that does not match the expected
// shape for its mode. It is fatal for the selection attempt; the launcher
// exits non-zero with the diagnostic.
type ParseError struct {
	Mode   models.Mode
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s candidate %q: %s", e.Mode, e.Line, e.Reason)
}

// ParseCandidate parses one listing output line according to the per-mode
// grammar. The grammar follows what the external tools natively emit; see
// the listing commands in the command package.
func ParseCandidate(mode models.Mode, line string) (models.Candidate, error) {
	c := models.Candidate{Mode: mode}

	switch mode {
	case models.ModeGrep:
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 2 || parts[0] == "" {
			return c, &ParseError{Mode: mode, Line: line, Reason: "expected path:line[:text]"}
		}
		lineNum, err := strconv.Atoi(parts[1])
		if err != nil || lineNum < 1 {
			return c, &ParseError{Mode: mode, Line: line, Reason: "line number is not a positive integer"}
		}
		c.Path = parts[0]
		c.Line = lineNum

	case models.ModeCommits:
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return c, &ParseError{Mode: mode, Line: line, Reason: "empty line"}
		}
		hash := fields[0]
		if !isHexHash(hash) {
			return c, &ParseError{Mode: mode, Line: line, Reason: "leading token is not a commit hash"}
		}
		c.Hash = hash
		c.Subject = strings.TrimSpace(strings.TrimPrefix(line, hash))

	case models.ModeStatus:
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return c, &ParseError{Mode: mode, Line: line, Reason: "expected status code and path"}
		}
		// renames read "R  old -> new"; the destination is what opens
		c.Path = fields[len(fields)-1]

	default:
		path := strings.TrimSpace(line)
		if path == "" {
			return c, &ParseError{Mode: mode, Line: line, Reason: "empty line"}
		}
		c.Path = path
	}

	return c, nil
}

func isHexHash(s string) bool {
	if len(s) < 7 || len(s) > 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Dispatcher routes an accepted candidate to its side effect. The editor and
// clipboard hooks are variables so tests can observe them without spawning
// processes or touching the system clipboard.
type Dispatcher struct {
	Out              io.Writer // selection output, consumed by the calling shell
	Info             io.Writer // human-facing status messages
	InEditorTerminal bool
	Editor           string // editor open command override, empty for the default

	RunEditor func(name string, args ...string) error
	Copy      func(text string) error
}

// New creates a Dispatcher with the real side effects wired in.
func New(inEditorTerminal bool, editor string) *Dispatcher {
	return &Dispatcher{
		Out:              os.Stdout,
		Info:             os.Stderr,
		InEditorTerminal: inEditorTerminal,
		Editor:           editor,
		RunEditor: func(name string, args ...string) error {
			// #nosec G204 -- the editor command is derived from the environment probe
			cmd := exec.Command(name, args...)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stderr
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
		Copy: clipboard.WriteAll,
	}
}

// Dispatch parses the accepted line and performs the per-mode side effect:
// open-in-editor or print for file-like modes, clipboard copy for commits.
func (d *Dispatcher) Dispatch(mode models.Mode, line string) error {
	c, err := ParseCandidate(mode, line)
	if err != nil {
		return err
	}
	log.Printf("dispatch: mode=%s path=%q line=%d hash=%q", mode, c.Path, c.Line, c.Hash)

	if mode == models.ModeCommits {
		return d.copyHash(c.Hash)
	}
	return d.openOrPrint(c)
}

func (d *Dispatcher) copyHash(hash string) error {
	if err := d.Copy(hash); err != nil {
		// no clipboard available; surface the hash on stderr so it is not lost
		fmt.Fprintf(d.Info, "Clipboard error: %v\nHash: %s\n", err, hash)
		return nil
	}
	fmt.Fprintf(d.Info, "Copied: %s\n", hash)
	return nil
}

func (d *Dispatcher) openOrPrint(c models.Candidate) error {
	location := c.Path
	if c.Line > 0 {
		location = fmt.Sprintf("%s:%d", c.Path, c.Line)
	}

	if d.InEditorTerminal {
		fmt.Fprintf(d.Info, "Opening: %s\n", location)
		name, args := workspace.EditorOpenCommand(d.Editor, c.Path, c.Line)
		if err := d.RunEditor(name, args...); err != nil {
			return fmt.Errorf("failed to open %s: %w", location, err)
		}
		return nil
	}

	fmt.Fprintln(d.Out, location)
	return nil
}
