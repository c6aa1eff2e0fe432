package keypad

import (
	"fmt"
	"time"

	"github.com/llehouerou/padctl/internal/color"
	"github.com/llehouerou/padctl/internal/lighting"
)

// LoadOptions configures the startup animation.
type LoadOptions struct {
	Pattern   []int         // order in which keys light up
	StepDelay time.Duration // pause after each key
	FrameHold time.Duration // hold for each fade frame
}

// Load blanks the board, fades each key of the pattern from black to the
// default color, then resets the board.
func (kp *Keypad) Load(opts LoadOptions) error {
	if err := lighting.ValidatePattern(opts.Pattern); err != nil {
		return err
	}
	if err := kp.SetAmbientColor(color.Black); err != nil {
		return err
	}
	for _, idx := range opts.Pattern {
		k := kp.keys[idx]
		err := kp.leds.Fade(k.color, kp.defaultColor, opts.FrameHold, func(c color.Color) error {
			k.color = c
			return kp.render()
		})
		if err != nil {
			return fmt.Errorf("fade key %d: %w", idx, err)
		}
		kp.leds.Hold(opts.StepDelay)
	}
	return kp.Reset()
}
