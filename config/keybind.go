package config

import (
	"fmt"
	"strings"

	"github.com/ThatOtherAndrew/Infinidesk/internal/keys"
)

// ActionKind discriminates the keybind action sum type.
type ActionKind int

const (
	ActionExec ActionKind = iota
	ActionCloseWindow
	ActionExit
	ActionToggleDrawing
	ActionClearDrawings
	ActionUndo
	ActionRedo
	ActionGather
	ActionSwitcher
)

// Action is what a keybind triggers: either an external command or one of
// the builtin compositor actions.
type Action struct {
	Kind ActionKind
	// Command is the shell command for ActionExec, empty otherwise.
	Command string
}

// builtinActions maps the config action names to their kinds.
var builtinActions = map[string]ActionKind{
	"close_window":    ActionCloseWindow,
	"exit":            ActionExit,
	"toggle_drawing":  ActionToggleDrawing,
	"clear_drawings":  ActionClearDrawings,
	"undo_stroke":     ActionUndo,
	"redo_stroke":     ActionRedo,
	"gather_windows":  ActionGather,
	"window_switcher": ActionSwitcher,
}

// Keybind binds a modifier+key chord to an action.
type Keybind struct {
	Modifiers keys.Modifiers
	Sym       keys.Sym
	Action    Action
}

// ParseKeybind parses a chord like "super + t" or "ctrl + alt + Delete"
// and its action value. All chord tokens except the last are modifiers;
// the last is the key name.
func ParseKeybind(chord, value string) (Keybind, error) {
	tokens := strings.Split(chord, "+")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	// Drop empty tokens from stray separators.
	cleaned := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return Keybind{}, fmt.Errorf("empty chord")
	}

	var kb Keybind
	for _, token := range cleaned[:len(cleaned)-1] {
		mod, ok := keys.ModifierFromName(token)
		if !ok {
			return Keybind{}, fmt.Errorf("unknown modifier %q", token)
		}
		kb.Modifiers |= mod
	}

	keyName := cleaned[len(cleaned)-1]
	kb.Sym = keys.SymFromName(keyName)
	if kb.Sym == keys.SymNone {
		return Keybind{}, fmt.Errorf("unknown key name %q", keyName)
	}

	action, err := parseAction(value)
	if err != nil {
		return Keybind{}, err
	}
	kb.Action = action
	return kb, nil
}

func parseAction(value string) (Action, error) {
	if command, ok := strings.CutPrefix(value, "exec:"); ok {
		return Action{Kind: ActionExec, Command: command}, nil
	}
	kind, ok := builtinActions[value]
	if !ok {
		return Action{}, fmt.Errorf("unknown action %q", value)
	}
	return Action{Kind: kind}, nil
}

// DefaultKeybinds is the binding set installed when the config has no
// [keybinds] section.
func DefaultKeybinds() []Keybind {
	defaults := []struct {
		chord string
		value string
	}{
		{"super + Return", "exec:kitty"},
		{"super + q", "close_window"},
		{"super + Escape", "exit"},
		{"super + d", "toggle_drawing"},
		{"super + c", "clear_drawings"},
		{"super + u", "undo_stroke"},
		{"super + r", "redo_stroke"},
		{"super + g", "gather_windows"},
		{"alt + Tab", "window_switcher"},
	}

	binds := make([]Keybind, 0, len(defaults))
	for _, d := range defaults {
		kb, err := ParseKeybind(d.chord, d.value)
		if err != nil {
			continue
		}
		binds = append(binds, kb)
	}
	return binds
}
