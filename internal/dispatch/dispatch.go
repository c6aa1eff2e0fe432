// Package dispatch runs a programmed command against the keyboard output.
package dispatch

import (
	"fmt"
	"time"

	"github.com/llehouerou/padctl/internal/command"
	"github.com/llehouerou/padctl/internal/keycode"
)

// Default settle delays after each action. The host drops or merges HID
// reports that arrive too close together.
const (
	DefaultShortcutDelay = time.Second
	DefaultTextDelay     = 500 * time.Millisecond
)

// Keyboard is the HID output device.
type Keyboard interface {
	// SendChord presses all codes together, then releases them.
	SendChord(codes ...keycode.Code) error
	// WriteText types text on the host.
	WriteText(text string) error
}

// Dispatcher executes commands action by action, waiting after each one.
type Dispatcher struct {
	kbd           Keyboard
	shortcutDelay time.Duration
	textDelay     time.Duration
	sleep         func(time.Duration)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDelays overrides the settle delays.
func WithDelays(shortcut, text time.Duration) Option {
	return func(d *Dispatcher) {
		d.shortcutDelay = shortcut
		d.textDelay = text
	}
}

// WithSleep replaces time.Sleep.
func WithSleep(fn func(time.Duration)) Option {
	return func(d *Dispatcher) { d.sleep = fn }
}

// New creates a dispatcher writing to kbd.
func New(kbd Keyboard, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		kbd:           kbd,
		shortcutDelay: DefaultShortcutDelay,
		textDelay:     DefaultTextDelay,
		sleep:         time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs every action of cmd in order. It blocks for the settle
// delays and stops at the first failing action.
func (d *Dispatcher) Execute(cmd command.Command) error {
	for i, a := range cmd.Actions {
		if err := d.run(a); err != nil {
			return fmt.Errorf("action %d (%s): %w", i, a, err)
		}
	}
	return nil
}

func (d *Dispatcher) run(a command.Action) error {
	switch a.Kind {
	case command.KeyboardShortcut:
		if len(a.Keys) == 0 || len(a.Keys) > command.MaxChordKeys {
			return command.ErrInvalidAction
		}
		codes, err := keycode.Resolve(a.Keys)
		if err != nil {
			return err
		}
		if err := d.kbd.SendChord(codes...); err != nil {
			return err
		}
		d.wait(d.shortcutDelay)
	case command.EnterText:
		if err := d.kbd.WriteText(a.Text); err != nil {
			return err
		}
		d.wait(d.textDelay)
	default:
		return command.ErrInvalidAction
	}
	return nil
}

func (d *Dispatcher) wait(delay time.Duration) {
	if delay > 0 {
		d.sleep(delay)
	}
}
