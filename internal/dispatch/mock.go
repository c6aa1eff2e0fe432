package dispatch

import (
	"sync"

	"github.com/llehouerou/padctl/internal/keycode"
)

// MockKeyboard is a test double for Keyboard.
type MockKeyboard struct {
	mu      sync.Mutex
	chords  [][]keycode.Code
	texts   []string
	events  []string
	sendErr error
}

// NewMockKeyboard creates a keyboard that records its output.
func NewMockKeyboard() *MockKeyboard {
	return &MockKeyboard{}
}

func (m *MockKeyboard) SendChord(codes ...keycode.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.chords = append(m.chords, append([]keycode.Code(nil), codes...))
	m.events = append(m.events, "chord")
	return nil
}

func (m *MockKeyboard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.texts = append(m.texts, text)
	m.events = append(m.events, "text")
	return nil
}

// SetError makes every call fail with err.
func (m *MockKeyboard) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// Chords returns the recorded chords.
func (m *MockKeyboard) Chords() [][]keycode.Code {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chords
}

// Texts returns the recorded text writes.
func (m *MockKeyboard) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texts
}

// Events returns "chord" or "text" for each call, in order.
func (m *MockKeyboard) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

// Verify MockKeyboard implements Keyboard at compile time.
var _ Keyboard = (*MockKeyboard)(nil)
