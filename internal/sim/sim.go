// Package sim runs the keypad against a terminal instead of hardware.
// Keyboard rows 1234, qwer, asdf and zxcv stand in for the four key rows
// (see keymap.GridRows).
package sim

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/llehouerou/padctl/internal/color"
	"github.com/llehouerou/padctl/internal/dispatch"
	"github.com/llehouerou/padctl/internal/keycode"
	"github.com/llehouerou/padctl/internal/keymap"
	"github.com/llehouerou/padctl/internal/keypad"
	"github.com/llehouerou/padctl/internal/lighting"
)

const (
	cellWidth  = 7
	cellHeight = 3
	originX    = 2
	originY    = 1
	logLines   = 8
)

// Simulator draws the grid and reports terminal keystrokes as key presses.
type Simulator struct {
	mu      sync.Mutex
	screen  tcell.Screen
	keys    *keymap.Resolver
	pending uint16
	pixels  [lighting.NumPixels]lighting.Pixel
	output  []string

	quit     chan struct{}
	quitOnce sync.Once
}

// New wraps an uninitialized screen.
func New(screen tcell.Screen) *Simulator {
	return &Simulator{
		screen: screen,
		keys:   keymap.NewResolver(keymap.Bindings),
		quit:   make(chan struct{}),
	}
}

// Start initializes the screen and begins reading terminal events.
func (s *Simulator) Start() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.mu.Lock()
	s.draw()
	s.mu.Unlock()

	go s.eventLoop()
	return nil
}

// Done is closed when the user quits with Esc or Ctrl+C.
func (s *Simulator) Done() <-chan struct{} {
	return s.quit
}

// Close restores the terminal.
func (s *Simulator) Close() {
	s.screen.Fini()
}

func (s *Simulator) eventLoop() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.handle(ev)
	}
}

func (s *Simulator) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.apply(s.keys.Resolve(keyString(ev)))
	case *tcell.EventResize:
		s.apply(keymap.ActionRedraw)
	}
}

func (s *Simulator) apply(a keymap.Action) {
	switch a {
	case keymap.ActionQuit:
		s.quitOnce.Do(func() { close(s.quit) })
	case keymap.ActionRedraw:
		s.mu.Lock()
		s.screen.Sync()
		s.draw()
		s.mu.Unlock()
	default:
		if idx, ok := a.KeyIndex(); ok && idx < keypad.NumKeys {
			s.mu.Lock()
			s.pending |= 1 << idx
			s.mu.Unlock()
		}
	}
}

func keyString(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyCtrlL:
		return "ctrl+l"
	default:
		return ""
	}
}

// ReadPressBitmask reports every key typed since the previous read as held.
func (s *Simulator) ReadPressBitmask() (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mask := ^s.pending
	s.pending = 0
	return mask, nil
}

// SetPixel records the pixel and redraws its cell.
func (s *Simulator) SetPixel(index int, r, g, b uint8, brightness float64) error {
	if index < 0 || index >= lighting.NumPixels {
		return fmt.Errorf("pixel %d out of range", index)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixels[index] = lighting.Pixel{Color: color.Color{R: r, G: g, B: b}, Brightness: brightness}
	s.drawCell(index)
	s.screen.Show()
	return nil
}

// Pixel returns the last value written to index.
func (s *Simulator) Pixel(index int) lighting.Pixel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pixels[index]
}

// SendChord logs the chord under the grid.
func (s *Simulator) SendChord(codes ...keycode.Code) error {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	s.appendOutput("chord " + strings.Join(parts, "+"))
	return nil
}

// Notice shows a diagnostic line under the grid.
func (s *Simulator) Notice(line string) {
	s.appendOutput("! " + line)
}

// WriteText logs the text under the grid.
func (s *Simulator) WriteText(text string) error {
	s.appendOutput(fmt.Sprintf("type  %q", text))
	return nil
}

// Output returns the logged chords and text, oldest first.
func (s *Simulator) Output() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.output...)
}

func (s *Simulator) appendOutput(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, line)
	if len(s.output) > logLines {
		s.output = s.output[len(s.output)-logLines:]
	}
	s.draw()
}

// draw repaints everything. Callers hold mu.
func (s *Simulator) draw() {
	s.screen.Clear()
	for i := range lighting.NumPixels {
		s.drawCell(i)
	}

	top := originY + keypad.GridSize*cellHeight + 1
	help := "padctl simulator - " + strings.Join(s.keys.KeysFor(keymap.ActionQuit), "/") + " to quit"
	putString(s.screen, originX, top, tcell.StyleDefault.Bold(true), help)
	for i, line := range s.output {
		putString(s.screen, originX, top+2+i, tcell.StyleDefault, line)
	}
	s.screen.Show()
}

func (s *Simulator) drawCell(index int) {
	x, y := keypad.Coordinates(index)
	p := s.pixels[index]
	c := p.Color.Scale(p.Brightness)
	bg := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	style := tcell.StyleDefault.Background(bg).Foreground(labelColor(c))

	left := originX + y*cellWidth
	top := originY + x*cellHeight
	for dy := range cellHeight - 1 {
		for dx := range cellWidth - 1 {
			s.screen.SetContent(left+dx, top+dy, ' ', nil, style)
		}
	}
	s.screen.SetContent(left+(cellWidth-1)/2, top, rune(keymap.GridRows[x][y]), nil, style)
}

func labelColor(c color.Color) tcell.Color {
	if int(c.R)+int(c.G)+int(c.B) > 3*128 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

func putString(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// Verify Simulator implements the hardware interfaces at compile time.
var (
	_ keypad.Bus        = (*Simulator)(nil)
	_ lighting.Pixels   = (*Simulator)(nil)
	_ dispatch.Keyboard = (*Simulator)(nil)
)
