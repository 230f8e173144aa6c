package entity

import (
	"errors"
	"fmt"
	"iter"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
)

const DefaultDimension = 3

var ErrInvalidDimension = errors.New("board dimension must be positive")

// Cell addresses a board square by zero-based column and row.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (that Cell) InBounds(dim int) bool {
	return that.Col >= 0 && that.Col < dim && that.Row >= 0 && that.Row < dim
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d, %d)", that.Col, that.Row)
}

// Board is a square grid of signs stored row by row.
type Board struct {
	dim   int
	cells []Sign
}

func NewBoard(dim int) (*Board, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}

	return &Board{
		dim:   dim,
		cells: make([]Sign, dim*dim),
	}, nil
}

// BoardFromSigns - rebuilds a board from its row-major cell list.
func BoardFromSigns(dim int, signs []Sign) (*Board, error) {
	board, err := NewBoard(dim)
	if err != nil {
		return nil, err
	}

	if len(signs) != len(board.cells) {
		return nil, fmt.Errorf("%w: got %d cells for dimension %d", apperror.ErrInvalidSnapshot, len(signs), dim)
	}

	for i, sign := range signs {
		if !sign.IsValid() {
			return nil, fmt.Errorf("%w: cell %d holds %s", apperror.ErrInvalidSnapshot, i, sign)
		}
	}

	copy(board.cells, signs)

	return board, nil
}

func (that *Board) Dim() int {
	return that.dim
}

func (that *Board) Get(col, row int) (Sign, error) {
	idx, err := that.index(col, row)
	if err != nil {
		return SignEmpty, err
	}

	return that.cells[idx], nil
}

// Set - writes sign into the cell, whatever it held before.
func (that *Board) Set(col, row int, sign Sign) error {
	idx, err := that.index(col, row)
	if err != nil {
		return err
	}

	that.cells[idx] = sign

	return nil
}

func (that *Board) At(cell Cell) (Sign, error) {
	return that.Get(cell.Col, cell.Row)
}

func (that *Board) Row(row int) ([]Sign, error) {
	if row < 0 || row >= that.dim {
		return nil, fmt.Errorf("%w: row %d", apperror.ErrOutOfBounds, row)
	}

	out := make([]Sign, that.dim)
	copy(out, that.cells[row*that.dim:(row+1)*that.dim])

	return out, nil
}

func (that *Board) Column(col int) ([]Sign, error) {
	if col < 0 || col >= that.dim {
		return nil, fmt.Errorf("%w: column %d", apperror.ErrOutOfBounds, col)
	}

	out := make([]Sign, that.dim)
	for row := range that.dim {
		out[row] = that.cells[row*that.dim+col]
	}

	return out, nil
}

// All - yields every cell in row-major order.
func (that *Board) All() iter.Seq2[Cell, Sign] {
	return func(yield func(Cell, Sign) bool) {
		for i, sign := range that.cells {
			if !yield(Cell{Col: i % that.dim, Row: i / that.dim}, sign) {
				return
			}
		}
	}
}

func (that *Board) IsFull() bool {
	for _, sign := range that.cells {
		if sign.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = SignEmpty
	}
}

func (that *Board) Clone() *Board {
	cells := make([]Sign, len(that.cells))
	copy(cells, that.cells)

	return &Board{dim: that.dim, cells: cells}
}

// Signs - returns a copy of the cells in row-major order.
func (that *Board) Signs() []Sign {
	out := make([]Sign, len(that.cells))
	copy(out, that.cells)

	return out
}

func (that *Board) index(col, row int) (int, error) {
	if !(Cell{Col: col, Row: row}).InBounds(that.dim) {
		return 0, fmt.Errorf("%w: (%d, %d) on a %dx%d board", apperror.ErrOutOfBounds, col, row, that.dim, that.dim)
	}

	return row*that.dim + col, nil
}
