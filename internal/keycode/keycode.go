// Package keycode defines the symbolic key names accepted in configuration
// and their USB HID usage codes.
package keycode

import (
	"fmt"
	"slices"
)

// Code is a USB HID keyboard usage ID.
type Code uint8

// Modifier usage IDs.
const (
	LeftControl  Code = 0xE0
	LeftShift    Code = 0xE1
	LeftAlt      Code = 0xE2
	LeftGUI      Code = 0xE3
	RightControl Code = 0xE4
	RightShift   Code = 0xE5
	RightAlt     Code = 0xE6
	RightGUI     Code = 0xE7
)

// IsModifier reports whether c is one of the eight modifier keys.
func (c Code) IsModifier() bool {
	return c >= LeftControl && c <= RightGUI
}

// ModifierBit returns the bit for c in a boot report modifier byte.
// It returns 0 for non-modifier codes.
func (c Code) ModifierBit() uint8 {
	if !c.IsModifier() {
		return 0
	}
	return 1 << (c - LeftControl)
}

// names maps configuration names to usage IDs. Several names share a code
// (control/leftControl, gui/windows/command, ...).
var names = map[string]Code{
	"a": 0x04, "b": 0x05, "c": 0x06, "d": 0x07, "e": 0x08, "f": 0x09,
	"g": 0x0A, "h": 0x0B, "i": 0x0C, "j": 0x0D, "k": 0x0E, "l": 0x0F,
	"m": 0x10, "n": 0x11, "o": 0x12, "p": 0x13, "q": 0x14, "r": 0x15,
	"s": 0x16, "t": 0x17, "u": 0x18, "v": 0x19, "w": 0x1A, "x": 0x1B,
	"y": 0x1C, "z": 0x1D,

	"one": 0x1E, "two": 0x1F, "three": 0x20, "four": 0x21, "five": 0x22,
	"six": 0x23, "seven": 0x24, "eight": 0x25, "nine": 0x26, "zero": 0x27,

	"enter":        0x28,
	"return":       0x28,
	"escape":       0x29,
	"backspace":    0x2A,
	"tab":          0x2B,
	"space":        0x2C,
	"spacebar":     0x2C,
	"minus":        0x2D,
	"equals":       0x2E,
	"leftBracket":  0x2F,
	"rightBracket": 0x30,
	"backslash":    0x31,
	"pound":        0x32,
	"semicolon":    0x33,
	"quote":        0x34,
	"graveAccent":  0x35,
	"comma":        0x36,
	"period":       0x37,
	"forwardSlash": 0x38,
	"capsLock":     0x39,

	"f1": 0x3A, "f2": 0x3B, "f3": 0x3C, "f4": 0x3D, "f5": 0x3E, "f6": 0x3F,
	"f7": 0x40, "f8": 0x41, "f9": 0x42, "f10": 0x43, "f11": 0x44, "f12": 0x45,

	"printScreen": 0x46,
	"scrollLock":  0x47,
	"pause":       0x48,
	"insert":      0x49,
	"home":        0x4A,
	"pageUp":      0x4B,
	"delete":      0x4C,
	"end":         0x4D,
	"pageDown":    0x4E,
	"rightArrow":  0x4F,
	"leftArrow":   0x50,
	"downArrow":   0x51,
	"upArrow":     0x52,

	"numlock":         0x53,
	"keypadAsterisk":  0x55,
	"plus":            0x57,
	"keypadBackslash": 0x64,
	"application":     0x65,
	"power":           0x66,

	"f13": 0x68, "f14": 0x69, "f15": 0x6A, "f16": 0x6B, "f17": 0x6C, "f18": 0x6D,
	"f19": 0x6E, "f20": 0x6F, "f21": 0x70, "f22": 0x71, "f23": 0x72, "f24": 0x73,

	"control":      LeftControl,
	"leftControl":  LeftControl,
	"shift":        LeftShift,
	"leftShift":    LeftShift,
	"alt":          LeftAlt,
	"leftAlt":      LeftAlt,
	"option":       LeftAlt,
	"gui":          LeftGUI,
	"leftGui":      LeftGUI,
	"windows":      LeftGUI,
	"command":      LeftGUI,
	"rightControl": RightControl,
	"rightShift":   RightShift,
	"rightAlt":     RightAlt,
	"rightGui":     RightGUI,
}

// String returns the shortest configuration name for c, or its hex usage ID.
func (c Code) String() string {
	best := ""
	for n, code := range names {
		if code != c {
			continue
		}
		if best == "" || len(n) < len(best) || (len(n) == len(best) && n < best) {
			best = n
		}
	}
	if best == "" {
		return fmt.Sprintf("0x%02x", uint8(c))
	}
	return best
}

// Lookup returns the usage ID for a configuration name.
func Lookup(name string) (Code, bool) {
	c, ok := names[name]
	return c, ok
}

// Resolve translates names to codes, failing on the first unknown name.
func Resolve(keys []string) ([]Code, error) {
	codes := make([]Code, 0, len(keys))
	for _, k := range keys {
		c, ok := names[k]
		if !ok {
			return nil, fmt.Errorf("unknown keycode %q", k)
		}
		codes = append(codes, c)
	}
	return codes, nil
}

// Names returns every accepted name, sorted.
func Names() []string {
	result := make([]string, 0, len(names))
	for n := range names {
		result = append(result, n)
	}
	slices.Sort(result)
	return result
}
