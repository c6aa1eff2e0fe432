package lighting

import "sync"

// PixelWrite records one SetPixel call.
type PixelWrite struct {
	Index      int
	R, G, B    uint8
	Brightness float64
}

// MockPixels is a test double for Pixels.
type MockPixels struct {
	mu     sync.Mutex
	writes []PixelWrite
	state  [NumPixels]PixelWrite
	err    error
}

// NewMockPixels creates an empty mock strip.
func NewMockPixels() *MockPixels {
	return &MockPixels{}
}

func (m *MockPixels) SetPixel(index int, r, g, b uint8, brightness float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	w := PixelWrite{Index: index, R: r, G: g, B: b, Brightness: brightness}
	m.writes = append(m.writes, w)
	m.state[index] = w
	return nil
}

// SetError makes subsequent writes fail with err.
func (m *MockPixels) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Writes returns every recorded write.
func (m *MockPixels) Writes() []PixelWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PixelWrite(nil), m.writes...)
}

// Pixel returns the last value written at index.
func (m *MockPixels) Pixel(index int) PixelWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state[index]
}

// Reset forgets recorded writes, keeping the current pixel state.
func (m *MockPixels) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = nil
}

// Verify MockPixels implements Pixels at compile time.
var _ Pixels = (*MockPixels)(nil)
