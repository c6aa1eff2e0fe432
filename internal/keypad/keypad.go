// Package keypad implements the 4x4 keypad: edge detection on key presses,
// the neutral/select toggle, command slot mapping, and the lighting that
// follows them.
package keypad

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/llehouerou/padctl/internal/color"
	"github.com/llehouerou/padctl/internal/command"
	"github.com/llehouerou/padctl/internal/lighting"
)

// ClearedBrightness is the ambient brightness after leaving command select.
const ClearedBrightness = 0.5

// DefaultPollInterval is used by Run when no interval is given.
const DefaultPollInterval = 10 * time.Millisecond

// ErrAlreadyProgrammed is returned when a key is programmed twice.
var ErrAlreadyProgrammed = errors.New("key already programmed")

// Bus reads the raw key states. Bit i is 0 while key i is held down.
type Bus interface {
	ReadPressBitmask() (uint16, error)
}

// Executor runs a resolved command.
type Executor interface {
	Execute(cmd command.Command) error
}

// Settings are the ambient values every key falls back to.
type Settings struct {
	DefaultColor        color.Color
	DefaultBrightness   float64
	HighlightBrightness float64
}

// Program assigns a highlight color and commands to the key at (X, Y).
// A nil Master keeps the key's current color.
type Program struct {
	X, Y     int
	Master   *color.Color
	Commands []command.Command
}

// Event describes what a poll did.
type Event struct {
	Transition Transition
	Key        int // pressed index, -1 when no fresh press
	Slot       int // resolved slot for TransitionExecute, -1 when none
}

func noEvent() Event {
	return Event{Transition: TransitionNone, Key: -1, Slot: -1}
}

// Keypad owns the 16 keys and the toggle state. It is not safe for
// concurrent use: all calls must come from the polling goroutine.
type Keypad struct {
	keys  [NumKeys]*Key
	state State

	defaultColor        color.Color
	currentColor        color.Color
	defaultBrightness   float64
	currentBrightness   float64
	highlightBrightness float64

	bus  Bus
	leds *lighting.Controller
	exec Executor
}

// New creates a keypad with every key unprogrammed and showing the default color.
func New(s Settings, bus Bus, leds *lighting.Controller, exec Executor) (*Keypad, error) {
	if err := checkBrightness(s.DefaultBrightness); err != nil {
		return nil, fmt.Errorf("default %w", err)
	}
	if err := checkBrightness(s.HighlightBrightness); err != nil {
		return nil, fmt.Errorf("highlight %w", err)
	}
	kp := &Keypad{
		state:               Neutral(),
		defaultColor:        s.DefaultColor,
		currentColor:        s.DefaultColor,
		defaultBrightness:   s.DefaultBrightness,
		currentBrightness:   s.DefaultBrightness,
		highlightBrightness: s.HighlightBrightness,
		bus:                 bus,
		leds:                leds,
		exec:                exec,
	}
	for x := range GridSize {
		for y := range GridSize {
			k, err := newKey(x, y, s.DefaultColor, s.DefaultBrightness)
			if err != nil {
				return nil, err
			}
			kp.keys[k.Index()] = k
		}
	}
	return kp, nil
}

// Program marks a key as programmed with its commands.
func (kp *Keypad) Program(p Program) error {
	k, err := kp.Key(p.X, p.Y)
	if err != nil {
		return err
	}
	if k.programmed {
		return fmt.Errorf("key (%d,%d): %w", p.X, p.Y, ErrAlreadyProgrammed)
	}
	for i, c := range p.Commands {
		if len(c.Actions) == 0 {
			return fmt.Errorf("key (%d,%d) command %d: %w", p.X, p.Y, i, command.ErrEmptyCommand)
		}
	}
	if p.Master != nil {
		k.master = *p.Master
	} else {
		k.master = k.color
	}
	k.programmed = true
	k.commands = p.Commands
	return nil
}

// Key returns the key at (x, y).
func (kp *Keypad) Key(x, y int) (*Key, error) {
	if err := CheckCoordinates(x, y); err != nil {
		return nil, err
	}
	return kp.keys[Index(x, y)], nil
}

// KeyAt returns the key at index, or nil when index is off the grid.
func (kp *Keypad) KeyAt(index int) *Key {
	if index < 0 || index >= NumKeys {
		return nil
	}
	return kp.keys[index]
}

// State returns the current toggle state.
func (kp *Keypad) State() State { return kp.state }

// ToggleActive reports whether a key is in command select.
func (kp *Keypad) ToggleActive() bool { return kp.state.Mode == ModeSelecting }

// ToggledKey returns the key in command select, if any.
func (kp *Keypad) ToggledKey() (*Key, bool) {
	if kp.state.Mode != ModeSelecting {
		return nil, false
	}
	return kp.keys[kp.state.Selected], true
}

func (kp *Keypad) DefaultColor() color.Color { return kp.defaultColor }

func (kp *Keypad) CurrentColor() color.Color { return kp.currentColor }

func (kp *Keypad) DefaultBrightness() float64 { return kp.defaultBrightness }

func (kp *Keypad) CurrentBrightness() float64 { return kp.currentBrightness }

// SetAmbientColor paints every key with c.
func (kp *Keypad) SetAmbientColor(c color.Color) error {
	kp.currentColor = c
	for _, k := range kp.keys {
		k.color = c
	}
	return kp.render()
}

// SetAmbientBrightness applies b to every key.
func (kp *Keypad) SetAmbientBrightness(b float64) error {
	if err := checkBrightness(b); err != nil {
		return err
	}
	kp.currentBrightness = b
	for _, k := range kp.keys {
		k.brightness = b
	}
	return kp.render()
}

// Poll runs one cycle: read the bus, update edges, apply at most one
// transition and repaint. When several keys are freshly pressed in the same
// cycle, only the lowest index is acted on.
func (kp *Keypad) Poll() (Event, error) {
	mask, err := kp.bus.ReadPressBitmask()
	if err != nil {
		return noEvent(), fmt.Errorf("read keys: %w", err)
	}
	var fresh *Key
	for i, k := range kp.keys {
		k.observe(mask&(1<<i) == 0)
		if fresh == nil && k.FreshPress() {
			fresh = k
		}
	}
	if fresh == nil {
		return noEvent(), nil
	}
	return kp.Press(fresh.Index())
}

// Press applies the toggle state machine to a fresh press of the key at index.
func (kp *Keypad) Press(index int) (Event, error) {
	k := kp.KeyAt(index)
	if k == nil {
		return noEvent(), fmt.Errorf("key index %d: %w", index, ErrOutOfRange)
	}
	ev := Event{Key: index, Slot: -1}
	ev.Transition = kp.state.Decide(index, k.programmed)

	var err error
	switch ev.Transition {
	case TransitionEnter:
		err = kp.toggleOn(k)
	case TransitionExecute:
		ev.Slot, err = kp.runCommand(k)
	case TransitionExit:
		err = kp.Clear()
	case TransitionNone:
	}
	return ev, err
}

// toggleOn enters command select for k and highlights its slots.
func (kp *Keypad) toggleOn(k *Key) error {
	idx := k.Index()
	k.toggled = true
	kp.state = kp.state.Next(TransitionEnter, idx)
	kp.currentColor = k.master
	kp.currentBrightness = kp.highlightBrightness
	for _, other := range kp.keys {
		other.brightness = kp.highlightBrightness
	}

	n := len(k.commands)
	for i, other := range kp.keys {
		switch {
		case i == idx:
			other.color = k.master
		case SlotAvailable(i, idx, n):
			other.color = k.master
		default:
			other.color = kp.defaultColor
		}
	}
	log.Printf("keypad: key (%d,%d) selecting, %d commands", k.x, k.y, n)
	return kp.render()
}

// runCommand executes the toggled key's command under pressed. It returns
// the resolved slot, or -1 when no command maps to pressed.
func (kp *Keypad) runCommand(pressed *Key) (int, error) {
	toggled, ok := kp.ToggledKey()
	if !ok {
		return -1, nil
	}
	slot, ok := ResolveSlot(pressed.Index(), toggled.Index(), len(toggled.commands))
	if !ok {
		log.Printf("keypad: key %d has no command for key (%d,%d)", toggled.Index(), pressed.x, pressed.y)
		return -1, nil
	}
	cmd := toggled.commands[slot]
	log.Printf("keypad: key %d slot %d: %s", toggled.Index(), slot, cmd)
	if err := kp.exec.Execute(cmd); err != nil {
		return slot, fmt.Errorf("execute key %d slot %d: %w", toggled.Index(), slot, err)
	}
	return slot, nil
}

// Clear blanks every key and leaves command select.
func (kp *Keypad) Clear() error {
	kp.currentColor = color.Black
	kp.currentBrightness = ClearedBrightness
	kp.state = Neutral()
	for _, k := range kp.keys {
		k.color = color.Black
		k.brightness = 0
		k.toggled = false
	}
	return kp.render()
}

// Reset returns the board to its ambient defaults. Every key shows its
// master color, so programmed keys show their own color.
func (kp *Keypad) Reset() error {
	kp.currentColor = kp.defaultColor
	kp.currentBrightness = kp.defaultBrightness
	kp.state = Neutral()
	for _, k := range kp.keys {
		k.color = k.master
		k.brightness = kp.currentBrightness
		k.toggled = false
	}
	return kp.render()
}

// Frame returns what every LED should show.
func (kp *Keypad) Frame() lighting.Frame {
	var f lighting.Frame
	for i, k := range kp.keys {
		f[i] = lighting.Pixel{Color: k.color, Brightness: k.brightness}
	}
	return f
}

func (kp *Keypad) render() error {
	return kp.leds.Render(kp.Frame())
}

// Run polls until ctx is cancelled. A command or animation in progress
// finishes before cancellation is observed. Collaborator errors stop the loop.
func (kp *Keypad) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := kp.Poll(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
