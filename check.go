package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/llehouerou/padctl/internal/config"
	"github.com/llehouerou/padctl/internal/keycode"
	"github.com/llehouerou/padctl/internal/keypad"
	"github.com/llehouerou/padctl/internal/lighting"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and show where each command lands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return writeCheck(cmd.OutOrStdout(), s)
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the named load patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writePatterns(cmd.OutOrStdout())
	},
}

var keycodesCmd = &cobra.Command{
	Use:   "keycodes",
	Short: "List the key names accepted in keyboard shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range keycode.Names() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

// writeCheck prints the resolved configuration: ambient settings, then
// every programmed key with the key each of its commands is reached from.
func writeCheck(w io.Writer, s *config.Settings) error {
	var b strings.Builder

	fmt.Fprintf(&b, "colour %s at brightness %.2f, highlight %.2f\n",
		s.Keypad.DefaultColor.Hex(), s.Keypad.DefaultBrightness, s.Keypad.HighlightBrightness)
	fmt.Fprintf(&b, "load pattern %v, %v per key\n", s.Load.Pattern, s.Load.StepDelay)
	fmt.Fprintf(&b, "%s programmed\n", english.Plural(len(s.Programs), "key", ""))

	for _, p := range s.Programs {
		toggled := keypad.Index(p.X, p.Y)
		fmt.Fprintf(&b, "\nkey %d (%d,%d)", toggled, p.X, p.Y)
		if p.Master != nil {
			fmt.Fprintf(&b, " %s", p.Master.Hex())
		}
		fmt.Fprintf(&b, ": %s\n", english.Plural(len(p.Commands), "command", ""))

		for index := range keypad.NumKeys {
			slot, ok := keypad.ResolveSlot(index, toggled, len(p.Commands))
			if !ok {
				continue
			}
			x, y := keypad.Coordinates(index)
			fmt.Fprintf(&b, "  %s command -> key %d (%d,%d): %s\n",
				humanize.Ordinal(slot+1), index, x, y, p.Commands[slot])
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePatterns(w io.Writer) error {
	for _, name := range lighting.PatternNames() {
		p, err := lighting.Pattern(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == lighting.DefaultPattern {
			marker = " (default)"
		}
		if _, err := fmt.Fprintf(w, "%-8s %v%s\n", name, p, marker); err != nil {
			return err
		}
	}
	return nil
}
