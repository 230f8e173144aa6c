package render

import (
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

// Frame is everything a renderer needs for one tick. It is built from a
// snapshot and shares nothing with the live game.
type Frame struct {
	Game   *entity.Game `json:"game"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Cells  []CellSprite `json:"cells"`
	Strike *Segment     `json:"strike_segment,omitempty"`

	// FrameRate is how often a graphical client should redraw, per second.
	FrameRate int `json:"frame_rate"`
}

// CellSprite is one occupied cell and where its marker goes.
type CellSprite struct {
	Cell   entity.Cell `json:"cell"`
	Sign   entity.Sign `json:"sign"`
	Origin Point       `json:"origin"`
	Asset  string      `json:"asset"`
}

func NewFrame(game *entity.Game, layout Layout) Frame {
	width, height := layout.WindowSize()

	frame := Frame{
		Game:   game,
		Width:  width,
		Height: height,
		Cells:  make([]CellSprite, 0, len(game.Board)),

		FrameRate: layout.FrameRate(),
	}

	for i, sign := range game.Board {
		if sign.IsEmpty() {
			continue
		}

		cell := entity.Cell{Col: i % game.Dim, Row: i / game.Dim}
		frame.Cells = append(frame.Cells, CellSprite{
			Cell:   cell,
			Sign:   sign,
			Origin: layout.CellOrigin(cell),
			Asset:  layout.Sprite(sign),
		})
	}

	if segment, ok := layout.StrikeSegment(game.Strike); ok {
		frame.Strike = &segment
	}

	return frame
}

// SignAt - the sign in cell, Empty for cells outside the board.
func (that Frame) SignAt(cell entity.Cell) entity.Sign {
	if !cell.InBounds(that.Game.Dim) {
		return entity.SignEmpty
	}

	return that.Game.Board[cell.Row*that.Game.Dim+cell.Col]
}
