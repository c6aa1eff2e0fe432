package keypad

import (
	"errors"
	"fmt"

	"github.com/llehouerou/padctl/internal/color"
	"github.com/llehouerou/padctl/internal/command"
)

// ErrOutOfRange is returned when a coordinate or brightness is outside its range.
var ErrOutOfRange = errors.New("value out of range")

// Key is one cell of the grid.
type Key struct {
	x, y       int
	color      color.Color
	master     color.Color
	brightness float64
	toggled    bool
	pressed    bool
	held       bool // pressed on the previous poll too
	programmed bool
	commands   []command.Command
}

func newKey(x, y int, c color.Color, brightness float64) (*Key, error) {
	if err := CheckCoordinates(x, y); err != nil {
		return nil, err
	}
	k := &Key{x: x, y: y, color: c, master: c}
	if err := k.SetBrightness(brightness); err != nil {
		return nil, err
	}
	return k, nil
}

// X is the key's column.
func (k *Key) X() int { return k.x }

// Y is the key's row.
func (k *Key) Y() int { return k.y }

// Index returns the row-major index of the key.
func (k *Key) Index() int { return Index(k.x, k.y) }

// Color is the color the key shows outside command select.
func (k *Key) Color() color.Color { return k.color }

// MasterColor is the color shown on the key and its slots while it is toggled.
func (k *Key) MasterColor() color.Color { return k.master }

// Brightness is the key's own brightness, 0..1.
func (k *Key) Brightness() float64 { return k.brightness }

// SetBrightness sets the key brightness, rejecting values outside 0..1.
func (k *Key) SetBrightness(b float64) error {
	if err := checkBrightness(b); err != nil {
		return err
	}
	k.brightness = b
	return nil
}

// IsToggled reports whether the key is the one selected for command select.
func (k *Key) IsToggled() bool { return k.toggled }

// IsPressed reports whether the key was down on the last poll.
func (k *Key) IsPressed() bool { return k.pressed }

// WasAlreadyPressed reports whether the key was down on the previous poll as well.
func (k *Key) WasAlreadyPressed() bool { return k.held }

// IsProgrammed reports whether commands have been assigned to the key.
func (k *Key) IsProgrammed() bool { return k.programmed }

// Commands returns the programmed commands, in slot order.
func (k *Key) Commands() []command.Command { return k.commands }

// FreshPress reports a not-pressed to pressed transition on the last poll.
func (k *Key) FreshPress() bool {
	return k.pressed && !k.held
}

// observe records the raw pressed state read on this poll.
func (k *Key) observe(pressed bool) {
	if pressed {
		k.held = k.pressed
		k.pressed = true
		return
	}
	k.pressed = false
	k.held = false
}

func checkBrightness(b float64) error {
	if !(b >= 0 && b <= 1) {
		return fmt.Errorf("brightness %v: %w", b, ErrOutOfRange)
	}
	return nil
}
