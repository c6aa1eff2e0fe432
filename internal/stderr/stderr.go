//go:build linux

// Package stderr captures writes to file descriptor 2 while the terminal
// simulator owns the screen, so stray output from drivers and the runtime
// does not corrupt the grid.
package stderr

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Messages receives captured stderr lines.
// Callers should read from this channel to show them in the simulator.
var Messages = make(chan string, 100)

var (
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start begins capturing stderr output.
// Returns an error if capture cannot be set up; the program can continue
// without it.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = unix.Dup(int(os.Stderr.Fd())) //nolint:gosec // fd fits in int
	if err != nil {
		_ = r.Close()
		_ = w.Close()
		return err
	}

	// Dup3 rather than Dup2: linux/arm64 has no dup2.
	if err := unix.Dup3(int(w.Fd()), int(os.Stderr.Fd()), 0); err != nil { //nolint:gosec // fd fits in int
		_ = unix.Close(origStderr)
		origStderr = -1
		_ = r.Close()
		_ = w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case Messages <- line:
			default:
				// channel full, drop
			}
		}
	}()

	return nil
}

// Stop restores the original stderr and closes Messages once every
// captured line has been delivered.
func Stop() {
	if !started {
		return
	}

	_ = unix.Dup3(origStderr, int(os.Stderr.Fd()), 0) //nolint:gosec // fd fits in int
	_ = unix.Close(origStderr)
	origStderr = -1

	// fd 2 no longer refers to the pipe; closing our end lets the reader drain.
	_ = pipeWrite.Close()
	<-done
	_ = pipeRead.Close()

	close(Messages)
	started = false
}
