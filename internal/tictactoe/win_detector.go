package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

// Line names the kind of board line a strike runs along.
type Line uint8

const (
	LineNone Line = iota
	LineRow
	LineColumn
	LineDiagonal
	LineAntiDiagonal
)

func (that Line) String() string {
	switch that {
	case LineRow:
		return "row"
	case LineColumn:
		return "column"
	case LineDiagonal:
		return "diagonal"
	case LineAntiDiagonal:
		return "anti-diagonal"
	default:
		return "none"
	}
}

// WinOutcome is the verdict on a board after a move. Strike lists the
// winning cells from the first to the last, empty when nobody has won.
type WinOutcome struct {
	Winner entity.Sign
	Line   Line
	Strike []entity.Cell
}

func (that WinOutcome) HasWinner() bool {
	return !that.Winner.IsEmpty()
}

type lineCandidate struct {
	line  Line
	cells []entity.Cell
}

// Evaluate - checks whether the sign placed at last completes a line.
// Lines are tried in a fixed order: row, column, main diagonal, anti-diagonal.
func Evaluate(board *entity.Board, last entity.Cell) (WinOutcome, error) {
	sign, err := board.At(last)
	if err != nil {
		return WinOutcome{}, fmt.Errorf("failed to read last move: %w", err)
	}

	if sign.IsEmpty() {
		return WinOutcome{}, fmt.Errorf("%w: last move %s is empty", apperror.ErrInvalidOperation, last)
	}

	dim := board.Dim()

	candidates := []lineCandidate{
		{LineRow, rowCells(dim, last.Row)},
		{LineColumn, columnCells(dim, last.Col)},
	}

	if last.Col == last.Row {
		candidates = append(candidates, lineCandidate{LineDiagonal, diagonalCells(dim)})
	}

	if last.Col+last.Row == dim-1 {
		candidates = append(candidates, lineCandidate{LineAntiDiagonal, antiDiagonalCells(dim)})
	}

	for _, candidate := range candidates {
		if allHold(board, candidate.cells, sign) {
			return WinOutcome{Winner: sign, Line: candidate.line, Strike: candidate.cells}, nil
		}
	}

	return WinOutcome{}, nil
}

// completeLine - the first complete line anywhere on board. Every row and
// column passes through the main diagonal, so evaluating its cells plus the
// top right corner reaches every line.
func completeLine(board *entity.Board) WinOutcome {
	dim := board.Dim()

	starts := diagonalCells(dim)
	starts = append(starts, entity.Cell{Col: dim - 1, Row: 0})

	for _, cell := range starts {
		outcome, err := Evaluate(board, cell)
		if errors.Is(err, apperror.ErrInvalidOperation) {
			// an empty cell ends no line
			continue
		}

		if err != nil {
			panic(err)
		}

		if outcome.HasWinner() {
			return outcome
		}
	}

	return WinOutcome{}
}

func allHold(board *entity.Board, cells []entity.Cell, sign entity.Sign) bool {
	for _, cell := range cells {
		got, err := board.At(cell)
		if err != nil {
			// line cells are derived from the board dimension
			panic(err)
		}

		if got != sign {
			return false
		}
	}

	return true
}

func rowCells(dim, row int) []entity.Cell {
	cells := make([]entity.Cell, dim)
	for col := range dim {
		cells[col] = entity.Cell{Col: col, Row: row}
	}

	return cells
}

func columnCells(dim, col int) []entity.Cell {
	cells := make([]entity.Cell, dim)
	for row := range dim {
		cells[row] = entity.Cell{Col: col, Row: row}
	}

	return cells
}

func diagonalCells(dim int) []entity.Cell {
	cells := make([]entity.Cell, dim)
	for i := range dim {
		cells[i] = entity.Cell{Col: i, Row: i}
	}

	return cells
}

func antiDiagonalCells(dim int) []entity.Cell {
	cells := make([]entity.Cell, dim)
	for i := range dim {
		cells[i] = entity.Cell{Col: dim - 1 - i, Row: i}
	}

	return cells
}
