// Package config loads the keypad configuration file and turns it into
// validated keypad settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/padctl/internal/dotstar"
	"github.com/llehouerou/padctl/internal/expander"
	"github.com/llehouerou/padctl/internal/hidg"
)

// ErrNoConfig is returned when no configuration file exists in any search path.
var ErrNoConfig = errors.New("no configuration file found")

// Config mirrors the configuration file. Key names are camelCase so a
// config.json written for the device's on-board controller loads unchanged.
type Config struct {
	Brightness          float64 `koanf:"brightness"`
	Colour              any     `koanf:"colour"`      // {red, green, blue} or "#rrggbb"
	LoadPattern         any     `koanf:"loadPattern"` // pattern name or list of indices, nil for simple
	LoadPatternDelay    float64 `koanf:"loadPatternDelay"`
	FadeFrameDelay      float64 `koanf:"fadeFrameDelay"`
	HighlightBrightness float64 `koanf:"highlightBrightness"`
	PollInterval        float64 `koanf:"pollInterval"`
	ShortcutDelay       float64 `koanf:"shortcutDelay"`
	TextDelay           float64 `koanf:"textDelay"`

	Keys []KeyConfig `koanf:"config"`

	Hardware HardwareConfig `koanf:"hardware"`
}

// KeyConfig programs one key.
type KeyConfig struct {
	X        int              `koanf:"x"`
	Y        int              `koanf:"y"`
	Colour   any              `koanf:"colour"`
	Commands [][]ActionConfig `koanf:"commands"`
}

// ActionConfig is one action of a command.
type ActionConfig struct {
	ActionType string `koanf:"actionType"` // "keyboardShortcut" or "enterText"
	Action     any    `koanf:"action"`     // list of key names, or text
}

// HardwareConfig locates the devices on the host.
type HardwareConfig struct {
	I2CBus     string `koanf:"i2cBus"`
	I2CAddress int    `koanf:"i2cAddress"`
	SPISpeed   int    `koanf:"spiSpeed"`
	EnablePin  int    `koanf:"enablePin"` // BCM pin driven low at open, -1 for none
	HIDDevice  string `koanf:"hidDevice"`
}

// Default returns a configuration with every optional key set.
func Default() *Config {
	return &Config{
		Brightness:          0.5,
		LoadPatternDelay:    0.05,
		HighlightBrightness: 1.0,
		PollInterval:        0.01,
		ShortcutDelay:       1.0,
		TextDelay:           0.5,
		Hardware: HardwareConfig{
			I2CBus:     "/dev/i2c-1",
			I2CAddress: expander.DefaultAddress,
			SPISpeed:   dotstar.DefaultSpeed,
			EnablePin:  -1,
			HIDDevice:  hidg.DefaultDevice,
		},
	}
}

// Load reads every existing file in the search paths, later files
// overriding earlier ones.
func Load() (*Config, error) {
	var found []string
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w (searched %s)", ErrNoConfig, strings.Join(getConfigPaths(), ", "))
	}
	return load(found...)
}

// LoadFile reads a single configuration file.
func LoadFile(path string) (*Config, error) {
	return load(expandPath(path))
}

func load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Hardware.I2CBus = expandPath(cfg.Hardware.I2CBus)
	cfg.Hardware.HIDDevice = expandPath(cfg.Hardware.HIDDevice)

	return cfg, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return toml.Parser()
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/padctl/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, "padctl", "config.toml"))

	// 2. ./config.toml
	paths = append(paths, "config.toml")

	// 3. ./config.json (highest priority)
	paths = append(paths, "config.json")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
