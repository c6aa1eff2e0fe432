package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShortcut(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		wantErr bool
	}{
		{"single", []string{"f13"}, false},
		{"pair", []string{"control", "c"}, false},
		{"triple", []string{"control", "shift", "t"}, false},
		{"empty", nil, true},
		{"four keys", []string{"control", "shift", "alt", "t"}, true},
		{"blank name", []string{"control", ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewShortcut(tt.keys...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KeyboardShortcut, a.Kind)
			assert.Equal(t, tt.keys, a.Keys)
		})
	}
}

func TestNewShortcut_CopiesKeys(t *testing.T) {
	keys := []string{"control", "c"}
	a, err := NewShortcut(keys...)
	require.NoError(t, err)
	keys[1] = "v"
	assert.Equal(t, []string{"control", "c"}, a.Keys)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("keyboardShortcut")
	require.NoError(t, err)
	assert.Equal(t, KeyboardShortcut, k)

	k, err = ParseKind("enterText")
	require.NoError(t, err)
	assert.Equal(t, EnterText, k)

	_, err = ParseKind("mouseClick")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "keyboardShortcut", KeyboardShortcut.String())
	assert.Equal(t, "enterText", EnterText.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestNew(t *testing.T) {
	_, err := New()
	require.ErrorIs(t, err, ErrEmptyCommand)

	copyKeys, _ := NewShortcut("control", "c")
	cmd, err := New(copyKeys, NewText("hello"))
	require.NoError(t, err)
	assert.Len(t, cmd.Actions, 2)
	assert.Equal(t, `control+c, type "hello"`, cmd.String())
}
