package render

import (
	"github.com/rocketscienceinc/tictactoe-pad/internal/config"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment is a strike line in window pixels.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Layout places an N×N board of sprites separated by grid lines.
type Layout struct {
	dim           int
	spriteWidth   int
	spriteHeight  int
	lineThickness int

	frameRate int
	xAsset    string
	oAsset    string
}

func NewLayout(dim int, conf config.Render) Layout {
	return Layout{
		dim:           dim,
		spriteWidth:   conf.SpriteWidth,
		spriteHeight:  conf.SpriteHeight,
		lineThickness: conf.LineThickness,
		frameRate:     conf.FrameRate,
		xAsset:        conf.XAsset,
		oAsset:        conf.OAsset,
	}
}

// Sprite - the asset drawn for sign, empty for an empty cell.
func (that Layout) Sprite(sign entity.Sign) string {
	switch sign {
	case entity.SignX:
		return that.xAsset
	case entity.SignO:
		return that.oAsset
	default:
		return ""
	}
}

func (that Layout) FrameRate() int {
	return that.frameRate
}

// WindowSize - sprites plus the grid lines between them.
func (that Layout) WindowSize() (int, int) {
	lines := that.lineThickness * (that.dim - 1)

	return that.spriteWidth*that.dim + lines, that.spriteHeight*that.dim + lines
}

func (that Layout) CellOrigin(cell entity.Cell) Point {
	return Point{
		X: cell.Col * (that.spriteWidth + that.lineThickness),
		Y: cell.Row * (that.spriteHeight + that.lineThickness),
	}
}

func (that Layout) CellCenter(cell entity.Cell) Point {
	origin := that.CellOrigin(cell)

	return Point{X: origin.X + that.spriteWidth/2, Y: origin.Y + that.spriteHeight/2}
}

// StrikeSegment - runs from the centre of the first strike cell to the centre of the last.
func (that Layout) StrikeSegment(strike []entity.Cell) (Segment, bool) {
	if len(strike) == 0 {
		return Segment{}, false
	}

	return Segment{
		From: that.CellCenter(strike[0]),
		To:   that.CellCenter(strike[len(strike)-1]),
	}, true
}
