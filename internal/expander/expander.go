// Package expander reads the keypad's key states from its I2C IO expander.
package expander

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/llehouerou/padctl/internal/keypad"
)

const (
	// DefaultAddress is the expander's I2C address on the keypad.
	DefaultAddress = 0x20

	// i2cSlave is the I2C_SLAVE ioctl request from linux/i2c-dev.h.
	i2cSlave = 0x0703

	inputRegister = 0x00
)

// Device is an open expander. Safe for concurrent use.
type Device struct {
	mu   sync.Mutex
	rw   io.ReadWriteCloser
	path string
}

// Open opens the I2C bus device (e.g. /dev/i2c-1) and selects the expander.
func Open(bus string, addr int) (*Device, error) {
	f, err := os.OpenFile(bus, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, addr); err != nil { //nolint:gosec // fd fits in int
		_ = f.Close()
		return nil, fmt.Errorf("select address 0x%02x on %s: %w", addr, bus, err)
	}
	return &Device{rw: f, path: bus}, nil
}

// ReadPressBitmask reads both input ports. Bit i is 0 while key i is held.
func (d *Device) ReadPressBitmask() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.rw.Write([]byte{inputRegister}); err != nil {
		return 0, fmt.Errorf("%s: write register: %w", d.path, err)
	}
	var buf [2]byte
	if _, err := io.ReadFull(d.rw, buf[:]); err != nil {
		return 0, fmt.Errorf("%s: read ports: %w", d.path, err)
	}
	return Decode(buf), nil
}

// Close releases the bus device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rw.Close()
}

// Decode joins the two port bytes into a key bitmask, port 0 in the low byte.
func Decode(b [2]byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// Verify Device implements keypad.Bus at compile time.
var _ keypad.Bus = (*Device)(nil)
