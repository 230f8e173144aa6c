package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

// TextRenderer draws frames as plain text. Strike cells are bracketed.
type TextRenderer struct {
	// Hints labels empty cells with the key that plays them.
	Hints func(cell entity.Cell) string
}

func (that TextRenderer) Render(w io.Writer, frame Frame) error {
	var sb strings.Builder

	dim := frame.Game.Dim
	for row := range dim {
		if row > 0 {
			sb.WriteString(strings.Repeat("---+", dim-1))
			sb.WriteString("---\n")
		}

		for col := range dim {
			if col > 0 {
				sb.WriteByte('|')
			}

			cell := entity.Cell{Col: col, Row: row}
			sb.WriteString(that.cellText(frame, cell))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(Status(frame.Game))
	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func (that TextRenderer) cellText(frame Frame, cell entity.Cell) string {
	sign := frame.SignAt(cell)

	mark := sign.String()
	if sign.IsEmpty() {
		mark = "."
		if that.Hints != nil {
			if hint := that.Hints(cell); len(hint) == 1 {
				mark = hint
			}
		}
	}

	if slices.Contains(frame.Game.Strike, cell) {
		return "[" + mark + "]"
	}

	return " " + mark + " "
}

// Status - one line describing the phase of the game.
func Status(game *entity.Game) string {
	switch game.Status {
	case entity.StatusWon:
		return fmt.Sprintf("%s won! Game over, press r to play again.", game.Winner)
	case entity.StatusDrawn:
		return "No more cells left! It's a draw!"
	default:
		return fmt.Sprintf("%s to move.", game.Turn)
	}
}
