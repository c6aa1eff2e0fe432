// Package command defines the actions a programmed key can run.
package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MaxChordKeys is the largest number of keys pressed together by one shortcut.
const MaxChordKeys = 3

// ErrInvalidAction is returned for actions with the wrong payload shape.
var ErrInvalidAction = errors.New("invalid action")

// ErrEmptyCommand is returned when a command has no actions.
var ErrEmptyCommand = errors.New("command has no actions")

// Kind discriminates the two action types.
type Kind int

const (
	KeyboardShortcut Kind = iota
	EnterText
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KeyboardShortcut:
		return "keyboardShortcut"
	case EnterText:
		return "enterText"
	default:
		return "unknown"
	}
}

// ParseKind parses a configuration action type.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "keyboardShortcut":
		return KeyboardShortcut, nil
	case "enterText":
		return EnterText, nil
	default:
		return 0, fmt.Errorf("%w: unknown action type %q", ErrInvalidAction, s)
	}
}

// Action is one atomic effect: a chord of 1 to 3 keys, or a string to type.
type Action struct {
	Kind Kind
	Keys []string // KeyboardShortcut only
	Text string   // EnterText only
}

// NewShortcut returns a chord action. It checks the payload shape only;
// key names are checked against the keycode vocabulary by the caller.
func NewShortcut(keys ...string) (Action, error) {
	if len(keys) == 0 || len(keys) > MaxChordKeys {
		return Action{}, fmt.Errorf("%w: shortcut needs 1 to %d keys, got %d",
			ErrInvalidAction, MaxChordKeys, len(keys))
	}
	for i, k := range keys {
		if k == "" {
			return Action{}, fmt.Errorf("%w: shortcut key %d is empty", ErrInvalidAction, i)
		}
	}
	return Action{Kind: KeyboardShortcut, Keys: slices.Clone(keys)}, nil
}

// NewText returns a text entry action.
func NewText(text string) Action {
	return Action{Kind: EnterText, Text: text}
}

// String implements fmt.Stringer.
func (a Action) String() string {
	if a.Kind == EnterText {
		return fmt.Sprintf("type %q", a.Text)
	}
	return strings.Join(a.Keys, "+")
}

// Command is an ordered, non-empty list of actions run together.
type Command struct {
	Actions []Action
}

// New returns a command, rejecting an empty action list.
func New(actions ...Action) (Command, error) {
	if len(actions) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Actions: actions}, nil
}

// String implements fmt.Stringer.
func (c Command) String() string {
	parts := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
