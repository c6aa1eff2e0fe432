// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Configuration
	OpConfigLoad     Op = "load configuration"
	OpConfigValidate Op = "validate configuration"
	OpKeyProgram     Op = "program key"

	// Hardware
	OpBusOpen      Op = "open key bus"
	OpBusRead      Op = "read key states"
	OpLEDOpen      Op = "open LED strip"
	OpKeyboardOpen Op = "open keyboard device"

	// Runtime
	OpLoadAnimation Op = "play load animation"
	OpPoll          Op = "poll keypad"
	OpSimulator     Op = "start simulator"

	// Initialization
	OpInitialize Op = "initialize keypad"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
