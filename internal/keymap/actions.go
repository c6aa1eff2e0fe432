// Package keymap binds terminal keys to simulator actions.
package keymap

import (
	"strconv"
	"strings"
)

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit   Action = "quit"
	ActionRedraw Action = "redraw"

	pressPrefix = "press_"
)

// PressAction returns the action that presses the keypad key at index.
func PressAction(index int) Action {
	return Action(pressPrefix + strconv.Itoa(index))
}

// KeyIndex returns the keypad index pressed by a, if a is a press action.
func (a Action) KeyIndex() (int, bool) {
	s, ok := strings.CutPrefix(string(a), pressPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
