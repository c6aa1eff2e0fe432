// Package hidg types on the host through a Linux USB HID gadget keyboard.
package hidg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/llehouerou/padctl/internal/dispatch"
	"github.com/llehouerou/padctl/internal/keycode"
)

// DefaultDevice is the usual gadget device node.
const DefaultDevice = "/dev/hidg0"

const (
	reportSize = 8
	maxKeys    = 6
)

// ErrUnsupportedRune is returned by WriteText for characters the US layout cannot type.
var ErrUnsupportedRune = errors.New("character not on keyboard layout")

// Keyboard writes boot protocol keyboard reports.
type Keyboard struct {
	mu sync.Mutex
	w  io.Writer
}

// New returns a keyboard writing reports to w.
func New(w io.Writer) *Keyboard {
	return &Keyboard{w: w}
}

// Open opens the gadget device node for writing.
func Open(path string) (*Keyboard, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

// SendChord presses codes together, then releases them all.
func (k *Keyboard) SendChord(codes ...keycode.Code) error {
	r, err := report(codes...)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tap(r)
}

// WriteText types text one character at a time. Nothing is sent when
// text contains a character the layout cannot type.
func (k *Keyboard) WriteText(text string) error {
	reports := make([][reportSize]byte, 0, len(text))
	for i, r := range text {
		s, ok := keycode.ForRune(r)
		if !ok {
			return fmt.Errorf("%w: %q at offset %d", ErrUnsupportedRune, r, i)
		}
		codes := []keycode.Code{s.Code}
		if s.Shift {
			codes = append(codes, keycode.LeftShift)
		}
		rep, err := report(codes...)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	for _, rep := range reports {
		if err := k.tap(rep); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keyboard) tap(r [reportSize]byte) error {
	if _, err := k.w.Write(r[:]); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	var release [reportSize]byte
	if _, err := k.w.Write(release[:]); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}

// report builds the 8 byte report: modifier bits, a reserved byte and up
// to six usage codes.
func report(codes ...keycode.Code) ([reportSize]byte, error) {
	var r [reportSize]byte
	n := 0
	for _, c := range codes {
		if c.IsModifier() {
			r[0] |= c.ModifierBit()
			continue
		}
		if n == maxKeys {
			return r, fmt.Errorf("more than %d keys in one report", maxKeys)
		}
		r[2+n] = byte(c)
		n++
	}
	return r, nil
}

// Verify Keyboard implements dispatch.Keyboard at compile time.
var _ dispatch.Keyboard = (*Keyboard)(nil)
