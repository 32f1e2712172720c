// Package session owns the launcher's one piece of real control logic: the
// mode/toggle state machine. One long-lived loop relaunches the selector
// with freshly built commands on every transition instead of re-execing the
// whole process.
package session

import (
	"context"
	"errors"

	"github.com/chmouel/lazyfind/internal/command"
	"github.com/chmouel/lazyfind/internal/config"
	"github.com/chmouel/lazyfind/internal/history"
	"github.com/chmouel/lazyfind/internal/log"
	"github.com/chmouel/lazyfind/internal/models"
	"github.com/chmouel/lazyfind/internal/selector"
)

// ErrCanceled reports that the user left the selector without accepting a
// line. It is not a failure; the exit code distinguishes it from success.
var ErrCanceled = errors.New("selection canceled")

// Dispatcher consumes the accepted line. Satisfied by dispatch.Dispatcher.
type Dispatcher interface {
	Dispatch(mode models.Mode, line string) error
}

// Session holds the mode/toggle state for one interactive run. The state is
// fully determined by (mode, toggles) plus the environment; every
// transition rebuilds the selector request from scratch.
type Session struct {
	cfg        *config.AppConfig
	builder    *command.Builder
	sel        selector.Selector
	keys       *KeyTable
	dispatcher Dispatcher

	// continueAfterOpen keeps the loop alive after opening a file, used
	// inside editor terminals where the selector should come right back.
	continueAfterOpen bool

	mode    models.Mode
	toggles models.Toggles

	lastMode models.Mode
	hasLast  bool

	// grep keeps one query per filter engine so switching rg<->fzf
	// restores what was typed in each
	rgQuery  string
	fzfQuery string
}

// New assembles a session starting in the given mode with all toggles off.
func New(cfg *config.AppConfig, sel selector.Selector, dispatcher Dispatcher, initial models.Mode, continueAfterOpen bool) (*Session, error) {
	keys, err := NewKeyTable(cfg.Keys)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:               cfg,
		builder:           command.NewBuilder(cfg),
		sel:               sel,
		keys:              keys,
		dispatcher:        dispatcher,
		continueAfterOpen: continueAfterOpen,
		mode:              initial,
	}, nil
}

// Mode returns the active mode.
func (s *Session) Mode() models.Mode { return s.mode }

// Toggles returns the current option flags.
func (s *Session) Toggles() models.Toggles { return s.toggles }

// SwitchMode activates m, preserving the toggle state and recording the
// previous mode for the last-mode key.
func (s *Session) SwitchMode(m models.Mode) {
	if m == s.mode {
		return
	}
	s.lastMode = s.mode
	s.hasLast = true
	s.mode = m
}

// SwitchLast swaps back to the previously active mode, if any.
func (s *Session) SwitchLast() bool {
	if !s.hasLast {
		return false
	}
	s.mode, s.lastMode = s.lastMode, s.mode
	return true
}

// Toggle flips one option flag, preserving the mode. Toggling twice is the
// identity.
func (s *Session) Toggle(a Action) {
	switch a {
	case ActionToggleHidden:
		s.toggles.Hidden = !s.toggles.Hidden
	case ActionToggleIgnore:
		s.toggles.NoIgnore = !s.toggles.NoIgnore
	case ActionToggleFilter:
		s.toggles.FzfFilter = !s.toggles.FzfFilter
	}
}

// buildRequest assembles the selector run for the current state. query is
// the text restored into the selector's input.
func (s *Session) buildRequest(query string) selector.Request {
	req := selector.Request{
		Prompt:      command.PromptLabel(s.mode, s.toggles),
		Header:      s.builder.Header(s.mode),
		ListCommand: s.builder.ListCommand(s.mode, s.toggles),
		Preview:     s.builder.PreviewCommand(s.mode),
		Query:       query,
		ExpectKeys:  s.keys.ExpectKeys(s.mode),
	}

	switch s.mode {
	case models.ModeGrep:
		req.Ansi = true
		req.Delimiter = ":"
		req.PreviewWindow = s.builder.PreviewWindow(s.mode)
		if !s.toggles.FzfFilter {
			req.LiveReload = true
			req.DisableSearch = true
		}
	case models.ModeCommits, models.ModeStatus:
		req.Ansi = true
	}

	if s.cfg.History {
		if file, err := history.FileForMode(s.mode); err == nil {
			req.HistoryFile = file
		} else {
			log.Printf("history disabled: %v", err)
		}
	}

	return req
}

// Run drives the interactive loop until a terminal transition: Accept
// (selection dispatched) or Cancel (ErrCanceled). Mode switches and option
// toggles relaunch the selector with the rebuilt commands.
func (s *Session) Run(ctx context.Context) error {
	query := ""

	for {
		out, err := s.sel.Pick(ctx, s.buildRequest(query))
		if err != nil {
			return err
		}

		if out.Key != "" {
			query = s.applyKey(ctx, out)
			continue
		}

		if out.Canceled {
			return ErrCanceled
		}

		if err := s.dispatcher.Dispatch(s.mode, out.Selection); err != nil {
			return err
		}

		// commits copy-and-exit; file opens keep the session alive inside
		// editor terminals
		if s.mode != models.ModeCommits && s.continueAfterOpen {
			query = out.Query
			continue
		}
		return nil
	}
}

// applyKey performs the transition for an expected chord and returns the
// query to restore into the next selector run.
func (s *Session) applyKey(ctx context.Context, out selector.Outcome) string {
	action, ok := s.keys.Lookup(s.mode, out.Key)
	if !ok {
		log.Printf("ignoring unexpected key %q in %s mode", out.Key, s.mode)
		return out.Query
	}

	switch action {
	case ActionModeMenu:
		next, picked, err := s.sel.PickMode(ctx, s.mode)
		if err != nil || !picked || next == s.mode {
			return out.Query
		}
		s.stashGrepQuery(out.Query)
		s.SwitchMode(next)
		return s.restoredQuery()

	case ActionLastMode:
		if !s.hasLast {
			return out.Query
		}
		s.stashGrepQuery(out.Query)
		s.SwitchLast()
		return s.restoredQuery()

	case ActionToggleFilter:
		// swap engines and restore the query typed in the other one
		if s.toggles.FzfFilter {
			s.fzfQuery = out.Query
		} else {
			s.rgQuery = out.Query
		}
		s.Toggle(action)
		if s.toggles.FzfFilter {
			return s.fzfQuery
		}
		return s.rgQuery

	default:
		s.Toggle(action)
		return out.Query
	}
}

// stashGrepQuery records the in-flight grep query before leaving the mode
// so returning to grep restores it.
func (s *Session) stashGrepQuery(query string) {
	if s.mode != models.ModeGrep {
		return
	}
	if s.toggles.FzfFilter {
		s.fzfQuery = query
	} else {
		s.rgQuery = query
	}
}

// restoredQuery returns the query to preload after entering the current
// mode. Only grep restores queries; other modes start blank.
func (s *Session) restoredQuery() string {
	if s.mode != models.ModeGrep {
		return ""
	}
	if s.toggles.FzfFilter {
		return s.fzfQuery
	}
	return s.rgQuery
}
