// Package models defines the data objects shared across lazyfind packages.
package models

import (
	"fmt"
	"strings"
)

// Mode identifies which browsing mode the session is in.
type Mode int

// Browsing modes.
const (
	ModeFiles Mode = iota
	ModeGrep
	ModeCommits
	ModeStatus
)

// AllModes returns every mode in menu order.
func AllModes() []Mode {
	return []Mode{ModeFiles, ModeGrep, ModeCommits, ModeStatus}
}

// String returns the CLI name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeGrep:
		return "grep"
	case ModeCommits:
		return "commits"
	case ModeStatus:
		return "status"
	default:
		return "files"
	}
}

// Label returns the display name used in the mode menu.
func (m Mode) Label() string {
	switch m {
	case ModeGrep:
		return "Grep"
	case ModeCommits:
		return "Commits"
	case ModeStatus:
		return "Status"
	default:
		return "Files"
	}
}

// Description returns the one-line help text for the mode menu.
func (m Mode) Description() string {
	switch m {
	case ModeGrep:
		return "Search text within files"
	case ModeCommits:
		return "Browse git commits"
	case ModeStatus:
		return "Browse changed files"
	default:
		return "Search files by name"
	}
}

// ParseMode converts a CLI argument into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "files":
		return ModeFiles, nil
	case "grep":
		return ModeGrep, nil
	case "commits":
		return ModeCommits, nil
	case "status":
		return ModeStatus, nil
	default:
		return ModeFiles, fmt.Errorf("unknown mode %q (expected files, grep, commits or status)", name)
	}
}

// HasToggles reports whether hidden/ignore toggles affect the mode's listing.
func (m Mode) HasToggles() bool {
	return m == ModeFiles || m == ModeGrep
}

// Toggles holds the independent listing option flags. Flags that do not
// apply to the active mode are preserved but inert, so switching back to a
// mode where they matter restores the prior listing.
type Toggles struct {
	Hidden    bool // include hidden files (--hidden)
	NoIgnore  bool // bypass ignore files (--no-ignore)
	FzfFilter bool // grep only: load all lines once and let the selector match
}

// Candidate is a parsed selection from the listing output of a mode.
type Candidate struct {
	Mode    Mode
	Path    string // files, grep, status
	Line    int    // grep only, 1-based; 0 when absent
	Hash    string // commits only
	Subject string // commits only, remainder of the line
}
