package keypad

// Mode is the keypad-wide toggle mode.
type Mode int

const (
	ModeNeutral Mode = iota
	ModeSelecting
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNeutral:
		return "Neutral"
	case ModeSelecting:
		return "Selecting"
	default:
		return "Unknown"
	}
}

// State is the toggle state carried from one poll to the next.
// Selected is the index of the toggled key and is only meaningful
// when Mode is ModeSelecting.
type State struct {
	Mode     Mode
	Selected int
}

// Neutral returns the state with no key toggled.
func Neutral() State {
	return State{Mode: ModeNeutral, Selected: -1}
}

// Selecting returns the state with the key at index toggled.
func Selecting(index int) State {
	return State{Mode: ModeSelecting, Selected: index}
}

// Transition is the outcome of a fresh press.
type Transition int

const (
	TransitionNone    Transition = iota // nothing happens
	TransitionEnter                     // enter command select for the pressed key
	TransitionExecute                   // run the slot under the pressed key
	TransitionExit                      // leave command select
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "None"
	case TransitionEnter:
		return "Enter"
	case TransitionExecute:
		return "Execute"
	case TransitionExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Decide returns the transition for a fresh press of the key at index.
func (s State) Decide(index int, programmed bool) Transition {
	if s.Mode == ModeSelecting {
		if index == s.Selected {
			return TransitionExit
		}
		return TransitionExecute
	}
	if programmed {
		return TransitionEnter
	}
	return TransitionNone
}

// Next returns the state after applying t for a press of the key at index.
func (s State) Next(t Transition, index int) State {
	switch t {
	case TransitionEnter:
		return Selecting(index)
	case TransitionExit:
		return Neutral()
	default:
		return s
	}
}
