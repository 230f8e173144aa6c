package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDrawn   = "drawn"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the stored form of a game: what the snapshot store saves and what
// renderers outside the process receive.
type Game struct {
	ID     string `json:"id"`
	Dim    int    `json:"dim"`
	Board  []Sign `json:"board"`
	Turn   Sign   `json:"player_turn"`
	Status string `json:"status"`
	Winner Sign   `json:"winner"`
	Strike []Cell `json:"strike,omitempty"`
	Moves  int    `json:"moves"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Validate - checks the fields a restore depends on.
func (that *Game) Validate() error {
	switch that.Status {
	case StatusOngoing, StatusWon, StatusDrawn:
	default:
		return fmt.Errorf("%w: %w: %q", apperror.ErrInvalidSnapshot, ErrUnknownGameStatus, that.Status)
	}

	if that.Dim < 1 || len(that.Board) != that.Dim*that.Dim {
		return fmt.Errorf("%w: board of %d cells for dimension %d", apperror.ErrInvalidSnapshot, len(that.Board), that.Dim)
	}

	if that.IsOngoing() && that.Turn.IsEmpty() {
		return fmt.Errorf("%w: ongoing game without a turn holder", apperror.ErrInvalidSnapshot)
	}

	if that.Status == StatusWon && (that.Winner.IsEmpty() || len(that.Strike) != that.Dim) {
		return fmt.Errorf("%w: won game without a winner or strike line", apperror.ErrInvalidSnapshot)
	}

	return nil
}
