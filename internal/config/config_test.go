//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/padctl/internal/color"
	"github.com/llehouerou/padctl/internal/command"
	"github.com/llehouerou/padctl/internal/dotstar"
	"github.com/llehouerou/padctl/internal/expander"
	"github.com/llehouerou/padctl/internal/hidg"
	"github.com/llehouerou/padctl/internal/keypad"
	"github.com/llehouerou/padctl/internal/lighting"
)

const legacyJSON = `{
  "brightness": 0.4,
  "colour": {"red": 255, "green": 0, "blue": 0},
  "loadPattern": "spiral",
  "loadPatternDelay": 0.1,
  "config": [
    {
      "x": 1, "y": 1,
      "colour": {"red": 0, "green": 255, "blue": 0},
      "commands": [
        [{"actionType": "keyboardShortcut", "action": ["control", "c"]}],
        [
          {"actionType": "enterText", "action": "hello"},
          {"actionType": "keyboardShortcut", "action": ["enter"]}
        ]
      ]
    },
    {
      "x": 3, "y": 0,
      "colour": {"red": 0, "green": 0, "blue": 255},
      "commands": []
    }
  ]
}`

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/padctl.toml",
			expected: filepath.Join(home, "padctl.toml"),
		},
		{
			name:     "absolute device path unchanged",
			input:    "/dev/i2c-1",
			expected: "/dev/i2c-1",
		},
		{
			name:     "relative path unchanged",
			input:    "conf/config.json",
			expected: "conf/config.json",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 3 {
		t.Fatalf("getConfigPaths() returned %d paths, want 3", len(paths))
	}

	expectedFirst := filepath.Join(xdg.ConfigHome, "padctl", "config.toml")
	if paths[0] != expectedFirst {
		t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
	}

	// config.json wins over everything else
	if paths[2] != "config.json" {
		t.Errorf("last config path = %q, want %q", paths[2], "config.json")
	}
}

func TestParserFor(t *testing.T) {
	tests := []struct {
		path string
		json bool
	}{
		{"config.json", true},
		{"/etc/padctl/CONFIG.JSON", true},
		{"config.toml", false},
		{"config", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out, err := parserFor(tt.path).Marshal(map[string]any{"a": 1})
			require.NoError(t, err)
			if tt.json {
				assert.Contains(t, string(out), `"a"`)
			} else {
				assert.NotContains(t, string(out), `"a"`)
			}
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_LegacyJSON(t *testing.T) {
	cfg, err := LoadFile(writeFile(t, "config.json", legacyJSON))
	require.NoError(t, err)

	s, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, color.Color{R: 255}, s.Keypad.DefaultColor)
	assert.InDelta(t, 0.4, s.Keypad.DefaultBrightness, 1e-9)
	assert.InDelta(t, 1.0, s.Keypad.HighlightBrightness, 1e-9)

	spiral, err := lighting.Pattern("spiral")
	require.NoError(t, err)
	assert.Equal(t, spiral, s.Load.Pattern)
	assert.Equal(t, 100*time.Millisecond, s.Load.StepDelay)
	assert.Equal(t, time.Duration(0), s.Load.FrameHold)

	assert.Equal(t, 10*time.Millisecond, s.PollInterval)
	assert.Equal(t, time.Second, s.ShortcutDelay)
	assert.Equal(t, 500*time.Millisecond, s.TextDelay)

	require.Len(t, s.Programs, 2)
	p := s.Programs[0]
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 1, p.Y)
	require.NotNil(t, p.Master)
	assert.Equal(t, color.Color{G: 255}, *p.Master)
	require.Len(t, p.Commands, 2)
	assert.Equal(t, "control+c", p.Commands[0].String())
	assert.Equal(t, `type "hello", enter`, p.Commands[1].String())
	assert.Equal(t, command.EnterText, p.Commands[1].Actions[0].Kind)

	assert.Empty(t, s.Programs[1].Commands)

	assert.Equal(t, "/dev/i2c-1", s.Hardware.I2CBus)
	assert.Equal(t, expander.DefaultAddress, s.Hardware.I2CAddress)
	assert.Equal(t, dotstar.DefaultSpeed, s.Hardware.SPISpeed)
	assert.Equal(t, hidg.DefaultDevice, s.Hardware.HIDDevice)
	assert.Equal(t, -1, s.Hardware.EnablePin)
}

func TestLoadFile_TOML(t *testing.T) {
	content := `
colour = "#102030"
brightness = 0.25
highlightBrightness = 0.9
loadPattern = [15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0]
fadeFrameDelay = 0.02
pollInterval = 0.005

[hardware]
i2cBus = "/dev/i2c-3"
i2cAddress = 0x21
enablePin = 17
`
	cfg, err := LoadFile(writeFile(t, "config.toml", content))
	require.NoError(t, err)

	s, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, color.Color{R: 0x10, G: 0x20, B: 0x30}, s.Keypad.DefaultColor)
	assert.InDelta(t, 0.25, s.Keypad.DefaultBrightness, 1e-9)
	assert.InDelta(t, 0.9, s.Keypad.HighlightBrightness, 1e-9)
	assert.Equal(t, []int{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, s.Load.Pattern)
	assert.Equal(t, 20*time.Millisecond, s.Load.FrameHold)
	assert.Equal(t, 5*time.Millisecond, s.PollInterval)

	assert.Equal(t, "/dev/i2c-3", s.Hardware.I2CBus)
	assert.Equal(t, 0x21, s.Hardware.I2CAddress)
	assert.Equal(t, 17, s.Hardware.EnablePin)
	assert.Equal(t, "/dev/hidg0", s.Hardware.HIDDevice)
	assert.Equal(t, 4000000, s.Hardware.SPISpeed)
	assert.Empty(t, s.Programs)
}

func TestLoadFile_Invalid(t *testing.T) {
	_, err := LoadFile(writeFile(t, "config.toml", "invalid = [[["))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "config.json", "{"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_SearchPaths(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	// config.json overrides config.toml
	require.NoError(t, os.WriteFile("config.toml", []byte("brightness = 0.3\ntextDelay = 2.0\n"), 0o600))
	require.NoError(t, os.WriteFile("config.json", []byte(`{"brightness": 0.8}`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, cfg.Brightness, 1e-9)
	assert.InDelta(t, 2.0, cfg.TextDelay, 1e-9)
}

func TestLoad_NoFile(t *testing.T) {
	if _, err := os.Stat(getConfigPaths()[0]); err == nil {
		t.Skip("user configuration present")
	}
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	_, err = Load()
	assert.ErrorIs(t, err, ErrNoConfig)
}

func validConfig() *Config {
	cfg := Default()
	cfg.Colour = map[string]any{"red": int64(0), "green": int64(0), "blue": int64(255)}
	return cfg
}

func shortcut(keys ...any) ActionConfig {
	return ActionConfig{ActionType: "keyboardShortcut", Action: keys}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{
			name:   "missing colour",
			mutate: func(c *Config) { c.Colour = nil },
			target: ErrInvalid,
		},
		{
			name:   "colour channel out of range",
			mutate: func(c *Config) { c.Colour = map[string]any{"red": 256.0, "green": 0.0, "blue": 0.0} },
			target: ErrInvalid,
		},
		{
			name:   "colour channel missing",
			mutate: func(c *Config) { c.Colour = map[string]any{"red": 1.0, "green": 0.0} },
			target: ErrInvalid,
		},
		{
			name:   "colour channel fractional",
			mutate: func(c *Config) { c.Colour = map[string]any{"red": 1.5, "green": 0.0, "blue": 0.0} },
			target: ErrInvalid,
		},
		{
			name:   "bad hex colour",
			mutate: func(c *Config) { c.Colour = "#zzzzzz" },
			target: ErrInvalid,
		},
		{
			name:   "brightness above one",
			mutate: func(c *Config) { c.Brightness = 1.5 },
			target: ErrInvalid,
		},
		{
			name:   "negative highlight brightness",
			mutate: func(c *Config) { c.HighlightBrightness = -0.1 },
			target: ErrInvalid,
		},
		{
			name:   "negative delay",
			mutate: func(c *Config) { c.LoadPatternDelay = -1 },
			target: ErrInvalid,
		},
		{
			name:   "unknown pattern name",
			mutate: func(c *Config) { c.LoadPattern = "zigzag" },
			target: lighting.ErrInvalidPattern,
		},
		{
			name:   "short pattern",
			mutate: func(c *Config) { c.LoadPattern = []any{0.0, 1.0, 2.0} },
			target: lighting.ErrInvalidPattern,
		},
		{
			name:   "pattern of strings",
			mutate: func(c *Config) { c.LoadPattern = []any{"a"} },
			target: ErrInvalid,
		},
		{
			name:   "coordinates out of grid",
			mutate: func(c *Config) { c.Keys = []KeyConfig{{X: 4, Y: 0}} },
			target: ErrInvalid,
		},
		{
			name:   "duplicate key",
			mutate: func(c *Config) { c.Keys = []KeyConfig{{X: 1, Y: 2}, {X: 1, Y: 2}} },
			target: ErrInvalid,
		},
		{
			name: "unknown action type",
			mutate: func(c *Config) {
				c.Keys = []KeyConfig{{Commands: [][]ActionConfig{{{ActionType: "mouseClick", Action: "left"}}}}}
			},
			target: ErrInvalid,
		},
		{
			name: "unknown keycode",
			mutate: func(c *Config) {
				c.Keys = []KeyConfig{{Commands: [][]ActionConfig{{shortcut("control", "banana")}}}}
			},
			target: ErrInvalid,
		},
		{
			name: "too many chord keys",
			mutate: func(c *Config) {
				c.Keys = []KeyConfig{{Commands: [][]ActionConfig{{shortcut("control", "alt", "shift", "t")}}}}
			},
			target: ErrInvalid,
		},
		{
			name: "text action with list payload",
			mutate: func(c *Config) {
				c.Keys = []KeyConfig{{Commands: [][]ActionConfig{{{ActionType: "enterText", Action: []any{"a"}}}}}}
			},
			target: ErrInvalid,
		},
		{
			name: "empty command",
			mutate: func(c *Config) {
				c.Keys = []KeyConfig{{Commands: [][]ActionConfig{{}}}}
			},
			target: ErrInvalid,
		},
		{
			name:   "i2c address out of range",
			mutate: func(c *Config) { c.Hardware.I2CAddress = 0x80 },
			target: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			_, err := cfg.Resolve()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestResolve_ShortcutPayloadShapes(t *testing.T) {
	cfg := validConfig()
	cfg.Keys = []KeyConfig{{
		X: 0, Y: 3,
		Commands: [][]ActionConfig{
			{{ActionType: "keyboardShortcut", Action: "f5"}},
			{{ActionType: "keyboardShortcut", Action: []string{"gui", "l"}}},
		},
	}}

	s, err := cfg.Resolve()
	require.NoError(t, err)
	require.Len(t, s.Programs, 1)
	assert.Nil(t, s.Programs[0].Master)
	assert.Equal(t, []string{"f5"}, s.Programs[0].Commands[0].Actions[0].Keys)
	assert.Equal(t, []string{"gui", "l"}, s.Programs[0].Commands[1].Actions[0].Keys)
}

func TestResolve_ProgramsKeypad(t *testing.T) {
	cfg, err := LoadFile(writeFile(t, "config.json", legacyJSON))
	require.NoError(t, err)
	s, err := cfg.Resolve()
	require.NoError(t, err)

	leds := lighting.NewController(lighting.NewMockPixels())
	kp, err := keypad.New(s.Keypad, keypad.NewMockBus(), leds, nil)
	require.NoError(t, err)
	for _, p := range s.Programs {
		require.NoError(t, kp.Program(p))
	}

	k, err := kp.Key(1, 1)
	require.NoError(t, err)
	assert.True(t, k.IsProgrammed())
	assert.Len(t, k.Commands(), 2)
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, seconds(0.05))
	assert.Equal(t, time.Duration(0), seconds(0))
	assert.Equal(t, 1500*time.Millisecond, seconds(1.5))
}
