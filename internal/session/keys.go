package session

import (
	"fmt"

	"github.com/chmouel/lazyfind/internal/config"
	"github.com/chmouel/lazyfind/internal/models"
)

// Action is what a key chord triggers when it ends a selector run.
type Action int

// Key actions. Accept and cancel are not listed here: the selector reports
// them through its own protocol rather than as expected chords.
const (
	ActionToggleHidden Action = iota
	ActionToggleIgnore
	ActionToggleFilter
	ActionModeMenu
	ActionLastMode
)

type binding struct {
	chord  string
	action Action
}

// KeyTable is the immutable chord-to-action mapping built from
// configuration at construction time. It is mode-aware: chords whose action
// is meaningless in the active mode are not handed to the selector at all.
type KeyTable struct {
	bindings []binding
	byChord  map[string]Action
}

// NewKeyTable builds the table, rejecting ambiguous configurations where
// one chord is bound to more than one action.
func NewKeyTable(keys config.KeyBindings) (*KeyTable, error) {
	bindings := []binding{
		{keys.ToggleHidden, ActionToggleHidden},
		{keys.ToggleIgnore, ActionToggleIgnore},
		{keys.ToggleFilter, ActionToggleFilter},
		{keys.ModeMenu, ActionModeMenu},
		{keys.LastMode, ActionLastMode},
	}

	byChord := make(map[string]Action, len(bindings))
	for _, b := range bindings {
		if b.chord == "" {
			return nil, fmt.Errorf("empty key chord in keybinding configuration")
		}
		if _, dup := byChord[b.chord]; dup {
			return nil, fmt.Errorf("key chord %q is bound to more than one action", b.chord)
		}
		byChord[b.chord] = b.action
	}

	return &KeyTable{bindings: bindings, byChord: byChord}, nil
}

func actionActive(mode models.Mode, a Action) bool {
	switch a {
	case ActionToggleHidden, ActionToggleIgnore:
		return mode.HasToggles()
	case ActionToggleFilter:
		return mode == models.ModeGrep
	default:
		return true
	}
}

// ExpectKeys returns the chords the selector should end its run on for the
// given mode, in stable order.
func (t *KeyTable) ExpectKeys(mode models.Mode) []string {
	var chords []string
	for _, b := range t.bindings {
		if actionActive(mode, b.action) {
			chords = append(chords, b.chord)
		}
	}
	return chords
}

// Lookup resolves a reported chord to its action within the given mode.
func (t *KeyTable) Lookup(mode models.Mode, chord string) (Action, bool) {
	action, ok := t.byChord[chord]
	if !ok || !actionActive(mode, action) {
		return 0, false
	}
	return action, true
}
