package input

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeymap_Parse(t *testing.T) {
	keymap := NewKeymap(entity.DefaultDimension)

	t.Run("Keypad layout", func(t *testing.T) {
		cases := map[string]entity.Cell{
			"7":   {Col: 0, Row: 0},
			"8":   {Col: 1, Row: 0},
			"9":   {Col: 2, Row: 0},
			"4":   {Col: 0, Row: 1},
			"5":   {Col: 1, Row: 1},
			"KP6": {Col: 2, Row: 1},
			"1":   {Col: 0, Row: 2},
			"kp2": {Col: 1, Row: 2},
			" 3 ": {Col: 2, Row: 2},
		}

		for key, want := range cases {
			command, err := keymap.Parse(key)
			require.NoError(t, err, "key %q", key)
			assert.Equal(t, Command{Kind: KindMove, Cell: want}, command, "key %q", key)
		}
	})

	t.Run("Control keys", func(t *testing.T) {
		for _, key := range []string{"r", "R", "reset"} {
			command, err := keymap.Parse(key)
			require.NoError(t, err)
			assert.Equal(t, KindReset, command.Kind)
		}

		for _, key := range []string{"q", "Esc", "quit"} {
			command, err := keymap.Parse(key)
			require.NoError(t, err)
			assert.Equal(t, KindQuit, command.Kind)
		}
	})

	t.Run("Explicit coordinates", func(t *testing.T) {
		command, err := keymap.Parse("2, 0")
		require.NoError(t, err)
		assert.Equal(t, Command{Kind: KindMove, Cell: entity.Cell{Col: 2, Row: 0}}, command)
	})

	t.Run("Coordinates outside the board", func(t *testing.T) {
		_, err := keymap.Parse("3,0")
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})

	t.Run("Unknown keys", func(t *testing.T) {
		for _, key := range []string{"0", "x", "", "a,b"} {
			_, err := keymap.Parse(key)
			require.ErrorIs(t, err, apperror.ErrUnknownKey, "key %q", key)
		}
	})
}

func TestKeymap_OtherDimensions(t *testing.T) {
	// Given: a 4x4 keymap
	keymap := NewKeymap(4)

	// Then: keypad digits are not bound but coordinates are
	_, err := keymap.Parse("7")
	require.ErrorIs(t, err, apperror.ErrUnknownKey)

	command, err := keymap.Parse("3,3")
	require.NoError(t, err)
	assert.Equal(t, entity.Cell{Col: 3, Row: 3}, command.Cell)
}

func TestKeymap_KeyFor(t *testing.T) {
	keymap := NewKeymap(entity.DefaultDimension)

	assert.Equal(t, "7", keymap.KeyFor(entity.Cell{Col: 0, Row: 0}))
	assert.Equal(t, "3", keymap.KeyFor(entity.Cell{Col: 2, Row: 2}))
	assert.Empty(t, NewKeymap(4).KeyFor(entity.Cell{Col: 0, Row: 0}))
}
