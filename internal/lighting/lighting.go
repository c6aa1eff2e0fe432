// Package lighting renders key colors to the LED strip and provides the
// fade animation and load patterns shown at startup.
package lighting

import (
	"fmt"
	"time"

	"github.com/llehouerou/padctl/internal/color"
)

// NumPixels is the number of LEDs under the keypad, one per key.
const NumPixels = 16

// Pixels is the LED strip driver. Writes take effect immediately.
type Pixels interface {
	SetPixel(index int, r, g, b uint8, brightness float64) error
}

// Pixel is what a single LED shows.
type Pixel struct {
	Color      color.Color
	Brightness float64
}

// Frame holds one Pixel per key index.
type Frame [NumPixels]Pixel

// Controller pushes frames to the strip, skipping pixels that did not change.
type Controller struct {
	pixels  Pixels
	sleep   func(time.Duration)
	last    Frame
	written [NumPixels]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithSleep replaces time.Sleep for frame holds.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Controller) { c.sleep = fn }
}

// NewController creates a controller writing to p.
func NewController(p Pixels, opts ...Option) *Controller {
	c := &Controller{pixels: p, sleep: time.Sleep}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render writes every pixel that differs from the last rendered frame.
func (c *Controller) Render(f Frame) error {
	for i, px := range f {
		if c.written[i] && c.last[i] == px {
			continue
		}
		if err := c.pixels.SetPixel(i, px.Color.R, px.Color.G, px.Color.B, px.Brightness); err != nil {
			return fmt.Errorf("set pixel %d: %w", i, err)
		}
		c.last[i] = px
		c.written[i] = true
	}
	return nil
}

// Invalidate forces the next Render to rewrite every pixel.
func (c *Controller) Invalidate() {
	c.written = [NumPixels]bool{}
}

// Fade walks from start to target. For each frame it calls paint with the
// frame color, then holds for hold.
func (c *Controller) Fade(start, target color.Color, hold time.Duration, paint func(color.Color) error) error {
	for _, fc := range FadeFrames(start, target) {
		if err := paint(fc); err != nil {
			return err
		}
		if hold > 0 {
			c.sleep(hold)
		}
	}
	return nil
}

// Hold blocks for d.
func (c *Controller) Hold(d time.Duration) {
	if d > 0 {
		c.sleep(d)
	}
}
