package lighting

import "github.com/llehouerou/padctl/internal/color"

const (
	// FadeSteps is the number of frames in a fade.
	FadeSteps = 25
	fadeStep  = 100 / FadeSteps
)

// FadeFrames returns the colors of a fade from start to target, on a 0..100
// scale in steps of 4. The last frame is target.
func FadeFrames(start, target color.Color) []color.Color {
	frames := make([]color.Color, 0, FadeSteps)
	for step := fadeStep; step <= 100; step += fadeStep {
		frames = append(frames, color.Interpolate(start, target, step))
	}
	return frames
}
