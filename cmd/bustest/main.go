// Diagnostic program that prints raw key bitmasks and fresh presses read
// from the keypad's IO expander.
package main

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/padctl/internal/errmsg"
	"github.com/llehouerou/padctl/internal/expander"
	"github.com/llehouerou/padctl/internal/keypad"
	"github.com/llehouerou/padctl/internal/lighting"
)

var (
	flagBus      string
	flagAddr     int
	flagPolls    int
	flagInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "bustest",
	Short:        "Print raw key states read from the keypad's IO expander",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		log.Printf("Opening expander 0x%02x on %s", flagAddr, flagBus)
		dev, err := expander.Open(flagBus, flagAddr)
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpBusOpen, flagBus, err))
		}
		defer dev.Close()

		err = watch(dev, flagPolls, flagInterval, func(poll int, mask uint16, key int) {
			if key < 0 {
				log.Printf("[%4d] mask %016b", poll, mask)
				return
			}
			x, y := keypad.Coordinates(key)
			log.Printf("[%4d] mask %016b  fresh %d(%d,%d)", poll, mask, key, x, y)
		})
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpBusRead, err))
		}
		log.Println("Done")
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagBus, "bus", "/dev/i2c-1", "I2C bus device")
	rootCmd.Flags().IntVar(&flagAddr, "addr", expander.DefaultAddress, "expander address")
	rootCmd.Flags().IntVarP(&flagPolls, "polls", "n", 500, "number of polls")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 10*time.Millisecond, "delay between polls")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// tap remembers the last mask read so it can be reported next to the
// keypad's own edge detection.
type tap struct {
	bus  keypad.Bus
	mask uint16
}

func (t *tap) ReadPressBitmask() (uint16, error) {
	mask, err := t.bus.ReadPressBitmask()
	t.mask = mask
	return mask, err
}

// watch polls bus through an unprogrammed keypad and calls report whenever
// the mask changes. key is the freshly pressed index, or -1.
func watch(bus keypad.Bus, polls int, interval time.Duration, report func(poll int, mask uint16, key int)) error {
	t := &tap{bus: bus, mask: keypad.AllReleased}
	kp, err := keypad.New(keypad.Settings{HighlightBrightness: 1}, t,
		lighting.NewController(lighting.NewMockPixels()), nil)
	if err != nil {
		return err
	}
	prev := t.mask
	for i := range polls {
		ev, err := kp.Poll()
		if err != nil {
			return err
		}
		if t.mask != prev {
			report(i, t.mask, ev.Key)
			prev = t.mask
		}
		if interval > 0 {
			time.Sleep(interval)
		}
	}
	return nil
}
