// Package command constructs the external command lines lazyfind hands to
// the selector: one to produce candidate lines per mode, one to preview the
// highlighted candidate. Matching and scanning stay in rg/git/bat; this
// package only assembles argument strings.
package command

import (
	"fmt"
	"strings"

	"github.com/chmouel/lazyfind/internal/config"
	"github.com/chmouel/lazyfind/internal/models"
)

// Builder derives listing and preview command strings from the configured
// tool paths. Building is pure: identical (mode, toggles) inputs always
// yield byte-identical commands.
type Builder struct {
	cfg *config.AppConfig
}

// NewBuilder creates a Builder on top of the given configuration.
func NewBuilder(cfg *config.AppConfig) *Builder {
	return &Builder{cfg: cfg}
}

// grep listing options shared by both filter variants.
const grepOpts = "--column --line-number --no-heading --color=always --smart-case"

// toggleFlags renders the rg flags for the active toggles. Flags that do
// not apply to the mode are simply not rendered; the toggle state itself is
// kept by the session so it survives mode switches.
func toggleFlags(mode models.Mode, t models.Toggles) string {
	if !mode.HasToggles() {
		return ""
	}
	var flags []string
	if t.Hidden {
		flags = append(flags, "--hidden")
	}
	if t.NoIgnore {
		flags = append(flags, "--no-ignore")
	}
	if len(flags) == 0 {
		return ""
	}
	return " " + strings.Join(flags, " ")
}

// ListCommand returns the shell command whose stdout supplies the selector's
// candidate lines for the given state.
func (b *Builder) ListCommand(mode models.Mode, t models.Toggles) string {
	switch mode {
	case models.ModeGrep:
		if t.FzfFilter {
			// one-shot listing of every line; the selector's own matcher
			// does the filtering
			return fmt.Sprintf("%s %s%s \"\" || true", b.cfg.RgPath, grepOpts, toggleFlags(mode, t))
		}
		// reload style: re-run against the current query on every change
		return fmt.Sprintf("%s %s%s {q} || true", b.cfg.RgPath, grepOpts, toggleFlags(mode, t))
	case models.ModeCommits:
		return "git log --oneline --color=always"
	case models.ModeStatus:
		return "git status -s"
	default:
		return fmt.Sprintf("%s --files%s", b.cfg.RgPath, toggleFlags(mode, t))
	}
}

// PreviewCommand returns the shell command shown next to the candidate list,
// keyed to the highlighted line via fzf placeholders.
func (b *Builder) PreviewCommand(mode models.Mode) string {
	bat := b.cfg.BatPath
	switch mode {
	case models.ModeGrep:
		return fmt.Sprintf("%s --color=always --highlight-line {2} {1} 2>/dev/null", bat)
	case models.ModeCommits:
		return fmt.Sprintf("git show {1} --color=always | %s --color=always --style=numbers 2>/dev/null", bat)
	case models.ModeStatus:
		return fmt.Sprintf("git diff --color=always -- {2..} | %s --color=always --style=numbers 2>/dev/null", bat)
	default:
		return fmt.Sprintf("%s --style=numbers --color=always --line-range :500 {} 2>/dev/null", bat)
	}
}

// PreviewWindow returns the preview pane layout for the mode, empty for the
// fzf default.
func (b *Builder) PreviewWindow(mode models.Mode) string {
	if mode == models.ModeGrep {
		return b.cfg.PreviewWindow
	}
	return ""
}

// PromptLabel renders the selector prompt for the state: the mode name plus
// single-letter suffixes for the active flags. Pure function of the state,
// used for user feedback only.
func PromptLabel(mode models.Mode, t models.Toggles) string {
	suffix := ""
	if mode.HasToggles() {
		if t.Hidden {
			suffix += "H"
		}
		if t.NoIgnore {
			suffix += "I"
		}
	}

	switch mode {
	case models.ModeGrep:
		engine := "rg"
		if t.FzfFilter {
			engine = "fzf"
		}
		return engine + suffix + ">"
	case models.ModeCommits:
		return "Commits>"
	case models.ModeStatus:
		return "Status>"
	default:
		return "Files " + suffix + ">"
	}
}

// Header renders the keybinding help line shown above the prompt.
func (b *Builder) Header(mode models.Mode) string {
	keys := b.cfg.Keys
	var parts []string

	if mode == models.ModeGrep {
		parts = append(parts, fmt.Sprintf("%s: rg/fzf", strings.ToUpper(keys.ToggleFilter)))
	}
	if mode.HasToggles() {
		parts = append(parts,
			fmt.Sprintf("%s: Ignore", strings.ToUpper(keys.ToggleIgnore)),
			fmt.Sprintf("%s: Hidden", strings.ToUpper(keys.ToggleHidden)),
		)
	}
	parts = append(parts,
		fmt.Sprintf("%s: Clear", strings.ToUpper(keys.ClearQuery)),
		fmt.Sprintf("%s: Modes", strings.ToUpper(keys.ModeMenu)),
		fmt.Sprintf("%s: Last", strings.ToUpper(keys.LastMode)),
	)
	if mode == models.ModeCommits {
		parts = append(parts, "Enter: Copy Hash")
	}

	return strings.Join(parts, " | ")
}
