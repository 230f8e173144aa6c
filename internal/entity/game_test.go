package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true for won and drawn games", func(t *testing.T) {
		assert.True(t, (&Game{Status: StatusWon}).IsFinished())
		assert.True(t, (&Game{Status: StatusDrawn}).IsFinished())
		assert.False(t, (&Game{Status: StatusOngoing}).IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		assert.True(t, (&Game{Status: StatusOngoing}).IsOngoing())
		assert.False(t, (&Game{Status: StatusDrawn}).IsOngoing())
	})
}

func TestGame_Validate(t *testing.T) {
	t.Run("Ongoing game is valid", func(t *testing.T) {
		// Given: an ongoing snapshot
		game := &Game{Dim: 3, Board: make([]Sign, 9), Turn: SignX, Status: StatusOngoing}

		// Then: it passes validation
		assert.NoError(t, game.Validate())
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		game := &Game{Dim: 3, Board: make([]Sign, 9), Turn: SignX, Status: "paused"}

		err := game.Validate()

		require.ErrorIs(t, err, apperror.ErrInvalidSnapshot)
		require.ErrorIs(t, err, ErrUnknownGameStatus)
	})

	t.Run("Board size must match the dimension", func(t *testing.T) {
		game := &Game{Dim: 3, Board: make([]Sign, 4), Turn: SignX, Status: StatusOngoing}

		require.ErrorIs(t, game.Validate(), apperror.ErrInvalidSnapshot)
	})

	t.Run("Ongoing game needs a turn holder", func(t *testing.T) {
		game := &Game{Dim: 3, Board: make([]Sign, 9), Status: StatusOngoing}

		require.ErrorIs(t, game.Validate(), apperror.ErrInvalidSnapshot)
	})

	t.Run("Won game needs a full strike line", func(t *testing.T) {
		game := &Game{
			Dim:    3,
			Board:  make([]Sign, 9),
			Status: StatusWon,
			Winner: SignX,
			Strike: []Cell{{Col: 0, Row: 0}},
		}

		require.ErrorIs(t, game.Validate(), apperror.ErrInvalidSnapshot)
	})
}
