// Package color defines the RGB value shown on a keypad LED.
package color

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrOutOfRange is returned when a channel value does not fit in 0..255.
var ErrOutOfRange = errors.New("color channel out of range")

// Color is an RGB triple. The zero value is black.
type Color struct {
	R, G, B uint8
}

// Black is the color of an unlit key.
var Black = Color{}

// New returns a color from integer channels, rejecting values outside 0..255.
func New(r, g, b int) (Color, error) {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.value < 0 || ch.value > 255 {
			return Color{}, fmt.Errorf("%s=%d: %w", ch.name, ch.value, ErrOutOfRange)
		}
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil //nolint:gosec // range checked above
}

// FromHex parses a "#rrggbb" string.
func FromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Scale returns the color with every channel multiplied by brightness (0..1).
// Used by renderers that have no per-pixel brightness control.
func (c Color) Scale(brightness float64) Color {
	if brightness <= 0 {
		return Black
	}
	if brightness >= 1 {
		return c
	}
	return Color{
		R: uint8(float64(c.R) * brightness),
		G: uint8(float64(c.G) * brightness),
		B: uint8(float64(c.B) * brightness),
	}
}

// Interpolate returns the color at step (0..100) of a linear transition
// from start to target. Channels are truncated toward zero.
func Interpolate(start, target Color, step int) Color {
	return Color{
		R: lerp(start.R, target.R, step),
		G: lerp(start.G, target.G, step),
		B: lerp(start.B, target.B, step),
	}
}

func lerp(from, to uint8, step int) uint8 {
	v := float64(from) + float64(int(to)-int(from))*float64(step)/100
	return uint8(int(v)) //nolint:gosec // v stays between from and to
}
