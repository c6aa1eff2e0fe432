package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/llehouerou/padctl/internal/color"
	"github.com/llehouerou/padctl/internal/command"
	"github.com/llehouerou/padctl/internal/keycode"
	"github.com/llehouerou/padctl/internal/keypad"
	"github.com/llehouerou/padctl/internal/lighting"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Settings is the validated form of a Config.
type Settings struct {
	Keypad        keypad.Settings
	Programs      []keypad.Program
	Load          keypad.LoadOptions
	PollInterval  time.Duration
	ShortcutDelay time.Duration
	TextDelay     time.Duration
	Hardware      HardwareConfig
}

// Resolve validates the configuration. Values are never clamped: anything
// out of range is an error.
func (c *Config) Resolve() (*Settings, error) {
	s := &Settings{Hardware: c.Hardware}

	if c.Colour == nil {
		return nil, invalid("colour is required")
	}
	def, err := parseColour(c.Colour)
	if err != nil {
		return nil, invalid("colour: %v", err)
	}
	if err := checkUnit("brightness", c.Brightness); err != nil {
		return nil, err
	}
	if err := checkUnit("highlightBrightness", c.HighlightBrightness); err != nil {
		return nil, err
	}
	s.Keypad = keypad.Settings{
		DefaultColor:        def,
		DefaultBrightness:   c.Brightness,
		HighlightBrightness: c.HighlightBrightness,
	}

	durations := []struct {
		name  string
		value float64
		dst   *time.Duration
	}{
		{"loadPatternDelay", c.LoadPatternDelay, &s.Load.StepDelay},
		{"fadeFrameDelay", c.FadeFrameDelay, &s.Load.FrameHold},
		{"pollInterval", c.PollInterval, &s.PollInterval},
		{"shortcutDelay", c.ShortcutDelay, &s.ShortcutDelay},
		{"textDelay", c.TextDelay, &s.TextDelay},
	}
	for _, d := range durations {
		if d.value < 0 || math.IsNaN(d.value) {
			return nil, invalid("%s must not be negative, got %v", d.name, d.value)
		}
		*d.dst = seconds(d.value)
	}
	if s.PollInterval == 0 {
		s.PollInterval = keypad.DefaultPollInterval
	}

	if s.Load.Pattern, err = parsePattern(c.LoadPattern); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(c.Keys))
	for i, kc := range c.Keys {
		p, err := kc.program()
		if err != nil {
			return nil, fmt.Errorf("config[%d]: %w", i, err)
		}
		idx := keypad.Index(p.X, p.Y)
		if seen[idx] {
			return nil, fmt.Errorf("config[%d]: %w", i, invalid("key (%d,%d) programmed twice", p.X, p.Y))
		}
		seen[idx] = true
		s.Programs = append(s.Programs, p)
	}

	if c.Hardware.I2CAddress < 0x03 || c.Hardware.I2CAddress > 0x77 {
		return nil, invalid("hardware.i2cAddress 0x%02x out of range", c.Hardware.I2CAddress)
	}
	if c.Hardware.SPISpeed <= 0 {
		return nil, invalid("hardware.spiSpeed must be positive")
	}

	return s, nil
}

func (kc KeyConfig) program() (keypad.Program, error) {
	if err := keypad.CheckCoordinates(kc.X, kc.Y); err != nil {
		return keypad.Program{}, invalid("%v", err)
	}
	p := keypad.Program{X: kc.X, Y: kc.Y}
	if kc.Colour != nil {
		c, err := parseColour(kc.Colour)
		if err != nil {
			return keypad.Program{}, invalid("colour: %v", err)
		}
		p.Master = &c
	}
	for j, actions := range kc.Commands {
		cmd, err := parseCommand(actions)
		if err != nil {
			return keypad.Program{}, fmt.Errorf("commands[%d]: %w", j, err)
		}
		p.Commands = append(p.Commands, cmd)
	}
	return p, nil
}

func parseCommand(actions []ActionConfig) (command.Command, error) {
	parsed := make([]command.Action, 0, len(actions))
	for i, ac := range actions {
		a, err := ac.action()
		if err != nil {
			return command.Command{}, fmt.Errorf("action %d: %w", i, err)
		}
		parsed = append(parsed, a)
	}
	cmd, err := command.New(parsed...)
	if err != nil {
		return command.Command{}, invalid("%v", err)
	}
	return cmd, nil
}

func (ac ActionConfig) action() (command.Action, error) {
	kind, err := command.ParseKind(ac.ActionType)
	if err != nil {
		return command.Action{}, invalid("%v", err)
	}

	switch kind {
	case command.EnterText:
		text, ok := ac.Action.(string)
		if !ok {
			return command.Action{}, invalid("enterText needs a string, got %T", ac.Action)
		}
		return command.NewText(text), nil
	default:
		keys, err := stringList(ac.Action)
		if err != nil {
			return command.Action{}, invalid("keyboardShortcut: %v", err)
		}
		a, err := command.NewShortcut(keys...)
		if err != nil {
			return command.Action{}, invalid("%v", err)
		}
		if _, err := keycode.Resolve(a.Keys); err != nil {
			return command.Action{}, invalid("%v", err)
		}
		return a, nil
	}
}

// stringList accepts a list of strings or a single string.
func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, want string", i, e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("want list of key names, got %T", v)
	}
}

func parsePattern(v any) ([]int, error) {
	switch t := v.(type) {
	case nil:
		return lighting.Pattern(lighting.DefaultPattern)
	case string:
		p, err := lighting.Pattern(t)
		if err != nil {
			return nil, fmt.Errorf("loadPattern: %w", err)
		}
		return p, nil
	case []any:
		p := make([]int, len(t))
		for i, e := range t {
			n, err := toInt(e)
			if err != nil {
				return nil, invalid("loadPattern[%d]: %v", i, err)
			}
			p[i] = n
		}
		if err := lighting.ValidatePattern(p); err != nil {
			return nil, fmt.Errorf("loadPattern: %w", err)
		}
		return p, nil
	default:
		return nil, invalid("loadPattern must be a name or a list, got %T", v)
	}
}

func parseColour(v any) (color.Color, error) {
	switch t := v.(type) {
	case string:
		return color.FromHex(t)
	case map[string]any:
		var ch [3]int
		for i, name := range []string{"red", "green", "blue"} {
			raw, ok := t[name]
			if !ok {
				return color.Color{}, fmt.Errorf("missing %s", name)
			}
			n, err := toInt(raw)
			if err != nil {
				return color.Color{}, fmt.Errorf("%s: %w", name, err)
			}
			ch[i] = n
		}
		return color.New(ch[0], ch[1], ch[2])
	default:
		return color.Color{}, fmt.Errorf("want table or hex string, got %T", v)
	}
}

// toInt accepts the integer forms produced by the TOML and JSON parsers.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("want number, got %T", v)
	}
}

func checkUnit(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalid("%s must be within 0..1, got %v", name, v)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
