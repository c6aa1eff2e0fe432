//go:build !linux

// Package stderr provides a no-op implementation off Linux, where the
// keypad hardware is never present.
package stderr

// Messages is never written to off Linux.
var Messages = make(chan string)

// Start is a no-op off Linux.
func Start() error {
	return nil
}

// Stop closes Messages.
func Stop() {
	close(Messages)
}
