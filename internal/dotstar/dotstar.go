// Package dotstar drives the keypad's APA102 LED strip over SPI.
package dotstar

import (
	"fmt"
	"math"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/llehouerou/padctl/internal/lighting"
)

// DefaultSpeed is the SPI clock in Hz.
const DefaultSpeed = 4000000

// Transmitter sends raw bytes over the SPI bus.
type Transmitter interface {
	Transmit(data []byte)
}

// Strip is a frame buffer that transmits itself on every change.
type Strip struct {
	mu     sync.Mutex
	pixels []pixel
	tx     Transmitter
}

type pixel struct {
	r, g, b    uint8
	brightness float64
}

// New returns a strip of n pixels writing to tx.
func New(n int, tx Transmitter) *Strip {
	return &Strip{pixels: make([]pixel, n), tx: tx}
}

// SetPixel updates one pixel and writes the whole strip.
func (s *Strip) SetPixel(index int, r, g, b uint8, brightness float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.pixels) {
		return fmt.Errorf("pixel %d out of range 0..%d", index, len(s.pixels)-1)
	}
	if !(brightness >= 0 && brightness <= 1) {
		return fmt.Errorf("pixel %d: brightness %v out of range", index, brightness)
	}
	s.pixels[index] = pixel{r: r, g: g, b: b, brightness: brightness}
	s.tx.Transmit(encodeFrame(s.pixels))
	return nil
}

// Off blanks every pixel.
func (s *Strip) Off() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pixels)
	s.tx.Transmit(encodeFrame(s.pixels))
}

// encodeFrame builds the APA102 wire format: a zero start frame, one
// brightness/blue/green/red quad per pixel, and an end frame long enough
// to clock the data through the whole chain.
func encodeFrame(pixels []pixel) []byte {
	end := (len(pixels) + 15) / 16
	buf := make([]byte, 0, 4+4*len(pixels)+end)
	buf = append(buf, 0, 0, 0, 0)
	for _, p := range pixels {
		buf = append(buf, 0xE0|brightnessBits(p.brightness), p.b, p.g, p.r)
	}
	for range end {
		buf = append(buf, 0xFF)
	}
	return buf
}

func brightnessBits(b float64) byte {
	return byte(math.Ceil(b * 31))
}

// SPI is an rpio-backed Transmitter on SPI0.
type SPI struct {
	enable rpio.Pin
	hasPin bool
}

// OpenSPI maps the GPIO memory, starts SPI0 at speed Hz and, when
// enablePin is not negative, drives that pin low to enable the level shifter.
func OpenSPI(speed, enablePin int) (*SPI, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		_ = rpio.Close()
		return nil, err
	}
	rpio.SpiSpeed(speed)
	rpio.SpiChipSelect(0)

	s := &SPI{}
	if enablePin >= 0 {
		s.enable = rpio.Pin(enablePin)
		s.enable.Output()
		s.enable.Low()
		s.hasPin = true
	}
	return s, nil
}

// Transmit sends data. rpio transmits in place, so data is copied first.
func (s *SPI) Transmit(data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	rpio.SpiTransmit(buf...)
}

// Close releases the SPI bus and the GPIO mapping.
func (s *SPI) Close() error {
	if s.hasPin {
		s.enable.High()
	}
	rpio.SpiEnd(rpio.Spi0)
	return rpio.Close()
}

// Verify Strip implements lighting.Pixels at compile time.
var _ lighting.Pixels = (*Strip)(nil)
