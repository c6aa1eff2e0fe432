package keymap

import "fmt"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "grid"
}

// GridRows are the terminal keys standing in for the keypad rows, top to bottom.
var GridRows = []string{"1234", "qwer", "asdf", "zxcv"}

// Bindings contains every simulator binding.
var Bindings = buildBindings()

func buildBindings() []Binding {
	b := []Binding{
		{ActionQuit, []string{"esc", "ctrl+c"}, "Quit simulator", "global"},
		{ActionRedraw, []string{"ctrl+l"}, "Redraw screen", "global"},
	}
	for x, row := range GridRows {
		for y, r := range []rune(row) {
			index := x*len(row) + y
			b = append(b, Binding{
				Action:      PressAction(index),
				Keys:        []string{string(r)},
				Description: fmt.Sprintf("Press key %d (%d,%d)", index, x, y),
				Context:     "grid",
			})
		}
	}
	return b
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
