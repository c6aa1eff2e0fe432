package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/llehouerou/padctl/internal/config"
	"github.com/llehouerou/padctl/internal/dispatch"
	"github.com/llehouerou/padctl/internal/dotstar"
	"github.com/llehouerou/padctl/internal/errmsg"
	"github.com/llehouerou/padctl/internal/expander"
	"github.com/llehouerou/padctl/internal/hidg"
	"github.com/llehouerou/padctl/internal/keypad"
	"github.com/llehouerou/padctl/internal/lighting"
	"github.com/llehouerou/padctl/internal/sim"
	"github.com/llehouerou/padctl/internal/stderr"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the load animation and handle key presses until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		closeLog, err := setupLogging(flagDebug)
		if err != nil {
			return fail(errmsg.OpInitialize, err)
		}
		defer closeLog()

		s, err := loadSettings()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var hw *hardware
		if flagSim {
			hw, err = openSimulator()
		} else {
			hw, err = openHardware(s.Hardware)
		}
		if err != nil {
			return err
		}
		defer hw.close()

		return run(hw.ctx(ctx), s, hw)
	},
}

// hardware bundles the three devices the keypad talks to.
type hardware struct {
	bus     keypad.Bus
	pixels  lighting.Pixels
	kbd     dispatch.Keyboard
	done    <-chan struct{}
	closers []func()
}

// ctx returns parent cancelled also when the device signals done.
func (h *hardware) ctx(parent context.Context) context.Context {
	if h.done == nil {
		return parent
	}
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-h.done:
		case <-ctx.Done():
		}
		cancel()
	}()
	return ctx
}

func (h *hardware) close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		h.closers[i]()
	}
}

func closeLogged(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Printf("close %s: %v", name, err)
		}
	}
}

func openHardware(cfg config.HardwareConfig) (*hardware, error) {
	hw := &hardware{}

	bus, err := expander.Open(cfg.I2CBus, cfg.I2CAddress)
	if err != nil {
		return nil, failWith(errmsg.OpBusOpen, cfg.I2CBus, err)
	}
	hw.bus = bus
	hw.closers = append(hw.closers, closeLogged(cfg.I2CBus, bus))

	spi, err := dotstar.OpenSPI(cfg.SPISpeed, cfg.EnablePin)
	if err != nil {
		hw.close()
		return nil, failWith(errmsg.OpLEDOpen, "spi0", err)
	}
	strip := dotstar.New(lighting.NumPixels, spi)
	hw.pixels = strip
	hw.closers = append(hw.closers, closeLogged("spi0", spi), strip.Off)

	kbd, f, err := hidg.Open(cfg.HIDDevice)
	if err != nil {
		hw.close()
		return nil, failWith(errmsg.OpKeyboardOpen, cfg.HIDDevice, err)
	}
	hw.kbd = kbd
	hw.closers = append(hw.closers, closeLogged(cfg.HIDDevice, f))

	log.Printf("hardware: bus %s@0x%02x, hid %s", cfg.I2CBus, cfg.I2CAddress, cfg.HIDDevice)
	return hw, nil
}

func openSimulator() (*hardware, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fail(errmsg.OpSimulator, err)
	}
	s := sim.New(screen)
	if err := s.Start(); err != nil {
		return nil, fail(errmsg.OpSimulator, err)
	}

	hw := &hardware{bus: s, pixels: s, kbd: s, done: s.Done()}
	hw.closers = append(hw.closers, s.Close)

	if err := stderr.Start(); err != nil {
		log.Printf("stderr capture unavailable: %v", err)
		return hw, nil
	}
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for line := range stderr.Messages {
			s.Notice(line)
		}
	}()
	hw.closers = append(hw.closers, func() {
		stderr.Stop()
		<-forwarded
	})
	return hw, nil
}

func run(ctx context.Context, s *config.Settings, hw *hardware) error {
	leds := lighting.NewController(hw.pixels)
	disp := dispatch.New(hw.kbd, dispatch.WithDelays(s.ShortcutDelay, s.TextDelay))

	kp, err := keypad.New(s.Keypad, hw.bus, leds, disp)
	if err != nil {
		return fail(errmsg.OpInitialize, err)
	}
	for _, p := range s.Programs {
		if err := kp.Program(p); err != nil {
			return failWith(errmsg.OpKeyProgram, fmt.Sprintf("(%d,%d)", p.X, p.Y), err)
		}
	}

	if err := kp.Load(s.Load); err != nil {
		return fail(errmsg.OpLoadAnimation, err)
	}
	log.Printf("keypad ready: %d programmed keys, polling every %v", len(s.Programs), s.PollInterval)

	if err := kp.Run(ctx, s.PollInterval); err != nil && !errors.Is(err, context.Canceled) {
		return fail(errmsg.OpPoll, err)
	}
	log.Printf("keypad stopped")
	return nil
}
