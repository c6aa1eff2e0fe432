package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/padctl/internal/command"
	"github.com/llehouerou/padctl/internal/keycode"
)

func newTestDispatcher(kbd Keyboard) (*Dispatcher, *[]time.Duration) {
	var slept []time.Duration
	d := New(kbd, WithSleep(func(dur time.Duration) {
		slept = append(slept, dur)
	}))
	return d, &slept
}

func mustShortcut(t *testing.T, keys ...string) command.Action {
	t.Helper()
	a, err := command.NewShortcut(keys...)
	require.NoError(t, err)
	return a
}

func TestExecute_Shortcut(t *testing.T) {
	kbd := NewMockKeyboard()
	d, slept := newTestDispatcher(kbd)

	cmd, err := command.New(mustShortcut(t, "control", "shift", "t"))
	require.NoError(t, err)
	require.NoError(t, d.Execute(cmd))

	require.Len(t, kbd.Chords(), 1)
	assert.Equal(t, []keycode.Code{keycode.LeftControl, keycode.LeftShift, 0x17}, kbd.Chords()[0])
	assert.Equal(t, []time.Duration{DefaultShortcutDelay}, *slept)
}

func TestExecute_MixedActionsInOrder(t *testing.T) {
	kbd := NewMockKeyboard()
	d, slept := newTestDispatcher(kbd)

	cmd, err := command.New(
		mustShortcut(t, "command", "space"),
		command.NewText("terminal"),
		mustShortcut(t, "enter"),
	)
	require.NoError(t, err)
	require.NoError(t, d.Execute(cmd))

	assert.Equal(t, []string{"chord", "text", "chord"}, kbd.Events())
	assert.Equal(t, []string{"terminal"}, kbd.Texts())
	assert.Equal(t, []time.Duration{
		DefaultShortcutDelay, DefaultTextDelay, DefaultShortcutDelay,
	}, *slept)
}

func TestExecute_CustomDelays(t *testing.T) {
	kbd := NewMockKeyboard()
	var slept []time.Duration
	d := New(kbd,
		WithDelays(100*time.Millisecond, 0),
		WithSleep(func(dur time.Duration) { slept = append(slept, dur) }),
	)

	cmd, _ := command.New(mustShortcut(t, "a"), command.NewText("b"))
	require.NoError(t, d.Execute(cmd))

	// zero delay does not sleep at all
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, slept)
}

func TestExecute_UnknownKeycode(t *testing.T) {
	kbd := NewMockKeyboard()
	d, _ := newTestDispatcher(kbd)

	cmd, _ := command.New(mustShortcut(t, "control", "hyper"))
	err := d.Execute(cmd)
	require.Error(t, err)
	assert.Empty(t, kbd.Chords())
}

func TestExecute_MalformedShortcut(t *testing.T) {
	d, _ := newTestDispatcher(NewMockKeyboard())
	cmd := command.Command{Actions: []command.Action{
		{Kind: command.KeyboardShortcut, Keys: []string{"a", "b", "c", "d"}},
	}}
	assert.ErrorIs(t, d.Execute(cmd), command.ErrInvalidAction)
}

func TestExecute_StopsOnError(t *testing.T) {
	kbd := NewMockKeyboard()
	boom := errors.New("hidg gone")
	kbd.SetError(boom)
	d, slept := newTestDispatcher(kbd)

	cmd, _ := command.New(command.NewText("x"), command.NewText("y"))
	err := d.Execute(cmd)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, *slept)
}
