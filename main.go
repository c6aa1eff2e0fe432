package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/llehouerou/padctl/internal/config"
	"github.com/llehouerou/padctl/internal/errmsg"
)

const appName = "padctl"

var (
	flagConfig string
	flagDebug  bool
	flagSim    bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Drive a 4x4 RGB macro keypad",
	Long: `padctl reads a 4x4 RGB keypad over I2C, lights it over SPI and types
keyboard shortcuts or text through a USB HID gadget.

Press a programmed key to select it; its commands light up on the other
keys. Press one of them to run it, or press the selected key again to
cancel.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "configuration file (skips the search paths)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write a debug log to the state directory")

	runCmd.Flags().BoolVar(&flagSim, "sim", false, "run in a terminal simulator instead of on hardware")

	rootCmd.AddCommand(runCmd, checkCmd, patternsCmd, keycodesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// opError renders as a user-facing message while keeping the cause for errors.Is.
type opError struct {
	op      errmsg.Op
	context string
	err     error
}

func (e *opError) Error() string { return errmsg.FormatWith(e.op, e.context, e.err) }

func (e *opError) Unwrap() error { return e.err }

func fail(op errmsg.Op, err error) error {
	return &opError{op: op, err: err}
}

func failWith(op errmsg.Op, context string, err error) error {
	return &opError{op: op, context: context, err: err}
}

// setupLogging sends the standard logger to the state directory when debug
// is set and discards it otherwise. The returned func closes the log file.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("%s: logging to %s", appName, path)
	return func() { _ = f.Close() }, nil
}

func loadSettings() (*config.Settings, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fail(errmsg.OpConfigLoad, err)
	}
	s, err := cfg.Resolve()
	if err != nil {
		return nil, fail(errmsg.OpConfigValidate, err)
	}
	return s, nil
}
