package keypad

import "sync"

// AllReleased is the bitmask read when no key is held.
const AllReleased uint16 = 0xFFFF

// MockBus is a test double for Bus. Queued masks are returned in order;
// once the queue is empty it keeps returning the last one.
type MockBus struct {
	mu    sync.Mutex
	queue []uint16
	last  uint16
	err   error
	reads int
}

// NewMockBus creates a bus with every key released.
func NewMockBus() *MockBus {
	return &MockBus{last: AllReleased}
}

func (m *MockBus) ReadPressBitmask() (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.err != nil {
		return 0, m.err
	}
	if len(m.queue) > 0 {
		m.last = m.queue[0]
		m.queue = m.queue[1:]
	}
	return m.last, nil
}

// Queue appends masks to return on the next reads.
func (m *MockBus) Queue(masks ...uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, masks...)
}

// SetError makes reads fail with err.
func (m *MockBus) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Reads returns the number of reads so far.
func (m *MockBus) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Pressed returns the active-low mask with the given indices held down.
func Pressed(indices ...int) uint16 {
	mask := AllReleased
	for _, i := range indices {
		mask &^= 1 << i
	}
	return mask
}

// Verify MockBus implements Bus at compile time.
var _ Bus = (*MockBus)(nil)
