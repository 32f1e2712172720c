// Package selector drives the interactive fuzzy selector subprocess. The
// selector is an opaque collaborator; lazyfind only feeds it a listing
// command, a preview command and keybindings, and reads back which key ended
// the run and which line was highlighted.
package selector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chmouel/lazyfind/internal/config"
	"github.com/chmouel/lazyfind/internal/log"
	"github.com/chmouel/lazyfind/internal/models"
)

// Request describes one interactive selector run.
type Request struct {
	Prompt        string
	Header        string
	ListCommand   string   // executed via the selector's start:reload bind
	LiveReload    bool     // re-run ListCommand on every query change (grep)
	DisableSearch bool     // disable the selector's own matcher (grep reload style)
	Delimiter     string   // field delimiter for preview placeholders
	Preview       string   // preview command, empty for none
	PreviewWindow string   // preview pane layout, empty for the default
	Query         string   // initial query, restored across relaunches
	HistoryFile   string   // per-mode history file, empty disables history
	ExpectKeys    []string // key chords that end the run and are reported back
	Ansi          bool
}

// Outcome is the result of a selector run. Exactly one of Key, Selection or
// Canceled carries the result: a non-empty Key means an expected chord ended
// the run, a non-empty Selection with an empty Key means the user accepted a
// line, and Canceled means the run ended without either.
type Outcome struct {
	Key       string
	Query     string
	Selection string
	Canceled  bool
}

// Selector abstracts the interactive picker so session logic can be tested
// against a fake instead of a real subprocess.
type Selector interface {
	Pick(ctx context.Context, req Request) (Outcome, error)
	PickMode(ctx context.Context, current models.Mode) (models.Mode, bool, error)
}

// Fzf runs fzf as the selector.
type Fzf struct {
	path string
	keys config.KeyBindings
}

// NewFzf creates a Selector backed by the fzf binary at path.
func NewFzf(path string, keys config.KeyBindings) *Fzf {
	return &Fzf{path: path, keys: keys}
}

var _ Selector = (*Fzf)(nil)

const (
	exitNoMatch  = 1
	exitError    = 2
	exitCanceled = 130
)

// commonOpts are applied to every interactive run.
var commonOpts = []string{"--height", "100%", "--layout=reverse", "--border"}

func (f *Fzf) buildArgs(req Request) []string {
	args := append([]string{}, commonOpts...)
	args = append(args, "--prompt", req.Prompt, "--print-query")

	if req.Ansi {
		args = append(args, "--ansi")
	}
	if req.DisableSearch {
		args = append(args, "--disabled")
	}
	if req.Delimiter != "" {
		args = append(args, "--delimiter", req.Delimiter)
	}

	args = append(args, "--bind", "start:reload:"+req.ListCommand)
	if req.LiveReload {
		// the short sleep coalesces keystrokes so rg is not forked per char
		args = append(args, "--bind", "change:reload:sleep 0.1; "+req.ListCommand)
	}

	args = append(args,
		"--bind", f.keys.ClearQuery+":clear-query",
		"--bind", f.keys.ListUp+":half-page-up",
		"--bind", f.keys.ListDown+":half-page-down",
		"--bind", f.keys.PreviewUp+":preview-half-page-up",
		"--bind", f.keys.PreviewDown+":preview-half-page-down",
	)

	if req.HistoryFile != "" {
		args = append(args,
			"--history", req.HistoryFile,
			"--bind", f.keys.HistoryPrev+":prev-history",
			"--bind", f.keys.HistoryNext+":next-history",
		)
	}

	if req.Preview != "" {
		args = append(args, "--preview", req.Preview)
		if req.PreviewWindow != "" {
			args = append(args, "--preview-window", req.PreviewWindow)
		}
	}

	if req.Query != "" {
		args = append(args, "--query", req.Query)
	}
	if req.Header != "" {
		args = append(args, "--header", req.Header)
	}
	if len(req.ExpectKeys) > 0 {
		args = append(args, "--expect", strings.Join(req.ExpectKeys, ","))
	}

	return args
}

// Pick launches the selector and blocks until the run ends.
func (f *Fzf) Pick(ctx context.Context, req Request) (Outcome, error) {
	args := f.buildArgs(req)
	log.Printf("selector: %s %s", f.path, strings.Join(args, " "))

	// #nosec G204 -- the selector path comes from local config; arguments are assembled internally
	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Outcome{}, fmt.Errorf("failed to run %s: %w", f.path, err)
		}
		exitCode = exitErr.ExitCode()
		if exitCode == exitError {
			return Outcome{}, fmt.Errorf("%s exited with an error", f.path)
		}
	}

	outcome := parseOutput(string(out), len(req.ExpectKeys) > 0)
	if outcome.Key != "" {
		// an expected chord ended the run; the highlighted line is irrelevant
		outcome.Selection = ""
		outcome.Canceled = false
		return outcome, nil
	}

	if exitCode == exitCanceled || exitCode == exitNoMatch || outcome.Selection == "" {
		outcome.Selection = ""
		outcome.Canceled = true
	}
	return outcome, nil
}

// parseOutput splits the selector's stdout into query, expect key and
// selection. With --print-query the first line is always the query; with
// --expect the following line names the key that ended the run (empty for a
// plain accept).
func parseOutput(out string, expect bool) Outcome {
	var o Outcome
	if out == "" {
		o.Canceled = true
		return o
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	o.Query = lines[0]
	rest := lines[1:]

	if expect && len(rest) > 0 {
		o.Key = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		o.Selection = rest[0]
	}
	return o
}

// PickMode shows the interactive mode menu and returns the chosen mode. The
// boolean result is false when the menu was dismissed.
func (f *Fzf) PickMode(ctx context.Context, current models.Mode) (models.Mode, bool, error) {
	modes := models.AllModes()
	lines := make([]string, 0, len(modes))
	for i, m := range modes {
		lines = append(lines, fmt.Sprintf("%d. %s\t%s", i+1, m.Label(), m.Description()))
	}

	args := []string{
		"--height", "40%",
		"--layout=reverse",
		"--border",
		"--prompt", "Select Mode> ",
		"--header", "Choose a mode (or press Esc to cancel)",
		"--with-nth", "1",
		"--delimiter", "\t",
		"--ansi",
	}

	// #nosec G204 -- the selector path comes from local config
	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() != exitError {
			return current, false, nil
		}
		return current, false, fmt.Errorf("failed to run %s: %w", f.path, err)
	}

	selected := strings.TrimSpace(string(out))
	label, _, _ := strings.Cut(selected, "\t")
	for i, m := range modes {
		if label == fmt.Sprintf("%d. %s", i+1, m.Label()) {
			return m, true, nil
		}
	}
	return current, false, nil
}
