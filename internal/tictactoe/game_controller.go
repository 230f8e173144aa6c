package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

// Phase tells whether moves are still accepted.
type Phase uint8

const (
	PhaseOngoing Phase = iota
	PhaseOver
)

func (that Phase) String() string {
	if that == PhaseOver {
		return "over"
	}

	return "ongoing"
}

// Result refines PhaseOver.
type Result uint8

const (
	ResultNone Result = iota
	ResultWon
	ResultDrawn
)

func (that Result) String() string {
	switch that {
	case ResultWon:
		return "won"
	case ResultDrawn:
		return "drawn"
	default:
		return "none"
	}
}

const firstMover = entity.SignX

// MoveResult describes an accepted move.
type MoveResult struct {
	Cell    entity.Cell
	Sign    entity.Sign
	Phase   Phase
	Result  Result
	Outcome WinOutcome
}

// Game is the single mutable game state. Every change goes through
// AttemptMove or Reset; everything else only reads.
type Game struct {
	board   *entity.Board
	phase   Phase
	result  Result
	turn    entity.Sign
	outcome WinOutcome
	moves   int
}

func NewGame(dim int) (*Game, error) {
	board, err := entity.NewBoard(dim)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		board: board,
		phase: PhaseOngoing,
		turn:  firstMover,
	}, nil
}

// AttemptMove - places the turn holder's sign at (col, row). A rejected move
// returns an error and leaves the game exactly as it was.
func (that *Game) AttemptMove(col, row int) (MoveResult, error) {
	cell := entity.Cell{Col: col, Row: row}

	if err := that.validateMove(cell); err != nil {
		return MoveResult{}, fmt.Errorf("move %s rejected: %w", cell, err)
	}

	sign := that.turn
	if err := that.board.Set(col, row, sign); err != nil {
		panic(fmt.Errorf("validated cell %s became unwritable: %w", cell, err))
	}
	that.moves++

	outcome, err := Evaluate(that.board, cell)
	if err != nil {
		panic(fmt.Errorf("evaluate after move %s: %w", cell, err))
	}

	switch {
	case outcome.HasWinner():
		that.phase = PhaseOver
		that.result = ResultWon
		that.outcome = outcome
	case that.board.IsFull():
		that.phase = PhaseOver
		that.result = ResultDrawn
		that.outcome = WinOutcome{}
	default:
		that.turn = entity.MustNext(sign)
	}

	return MoveResult{
		Cell:    cell,
		Sign:    sign,
		Phase:   that.phase,
		Result:  that.result,
		Outcome: that.outcome,
	}, nil
}

// validateMove - checks if the move is valid.
func (that *Game) validateMove(cell entity.Cell) error {
	if that.phase == PhaseOver {
		return apperror.ErrGameOver
	}

	sign, err := that.board.At(cell)
	if err != nil {
		return err
	}

	if !sign.IsEmpty() {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Reset - clears the board and hands the first move to X.
func (that *Game) Reset() {
	that.board.Reset()
	that.phase = PhaseOngoing
	that.result = ResultNone
	that.turn = firstMover
	that.outcome = WinOutcome{}
	that.moves = 0
}

func (that *Game) Phase() Phase {
	return that.phase
}

func (that *Game) Result() Result {
	return that.result
}

func (that *Game) IsOver() bool {
	return that.phase == PhaseOver
}

// Turn - the sign that plays next. It keeps the last mover once the game is over.
func (that *Game) Turn() entity.Sign {
	return that.turn
}

func (that *Game) Outcome() WinOutcome {
	strike := make([]entity.Cell, len(that.outcome.Strike))
	copy(strike, that.outcome.Strike)

	return WinOutcome{Winner: that.outcome.Winner, Line: that.outcome.Line, Strike: strike}
}

// Board - a copy of the board; changing it has no effect on the game.
func (that *Game) Board() *entity.Board {
	return that.board.Clone()
}

func (that *Game) Dim() int {
	return that.board.Dim()
}

func (that *Game) Moves() int {
	return that.moves
}

// Snapshot - converts the game into its stored form.
func (that *Game) Snapshot(id string) *entity.Game {
	snapshot := &entity.Game{
		ID:    id,
		Dim:   that.board.Dim(),
		Board: that.board.Signs(),
		Turn:  that.turn,
		Moves: that.moves,
	}

	switch that.result {
	case ResultWon:
		snapshot.Status = entity.StatusWon
		snapshot.Winner = that.outcome.Winner
		snapshot.Strike = that.Outcome().Strike
	case ResultDrawn:
		snapshot.Status = entity.StatusDrawn
	default:
		snapshot.Status = entity.StatusOngoing
	}

	return snapshot
}

// Restore - rebuilds a game from a snapshot and checks that the stored
// verdict agrees with the stored board: sign counts must match X moving
// first, a won game must hold its strike, and no other game may hold a
// complete line.
func Restore(snapshot *entity.Game) (*Game, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	board, err := entity.BoardFromSigns(snapshot.Dim, snapshot.Board)
	if err != nil {
		return nil, err
	}

	next, moves, err := nextMover(board)
	if err != nil {
		return nil, err
	}

	game := &Game{
		board: board,
		phase: PhaseOngoing,
		turn:  snapshot.Turn,
		moves: moves,
	}

	if snapshot.Status == entity.StatusWon {
		outcome, err := Evaluate(board, snapshot.Strike[len(snapshot.Strike)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSnapshot, err)
		}

		if outcome.Winner != snapshot.Winner {
			return nil, fmt.Errorf("%w: stored winner %s does not hold the strike line", apperror.ErrInvalidSnapshot, snapshot.Winner)
		}

		if moves == 0 || outcome.Winner != entity.MustNext(next) {
			return nil, fmt.Errorf("%w: %s won but did not make the last move", apperror.ErrInvalidSnapshot, outcome.Winner)
		}

		game.phase = PhaseOver
		game.result = ResultWon
		game.outcome = outcome

		return game, nil
	}

	if outcome := completeLine(board); outcome.HasWinner() {
		return nil, fmt.Errorf("%w: %s game holds a complete %s for %s",
			apperror.ErrInvalidSnapshot, snapshot.Status, outcome.Line, outcome.Winner)
	}

	switch snapshot.Status {
	case entity.StatusDrawn:
		if !board.IsFull() {
			return nil, fmt.Errorf("%w: drawn game with empty cells", apperror.ErrInvalidSnapshot)
		}

		game.phase = PhaseOver
		game.result = ResultDrawn
	default:
		if board.IsFull() {
			return nil, fmt.Errorf("%w: ongoing game on a full board", apperror.ErrInvalidSnapshot)
		}

		if snapshot.Turn != next {
			return nil, fmt.Errorf("%w: stored turn %s, the board says %s", apperror.ErrInvalidSnapshot, snapshot.Turn, next)
		}
	}

	return game, nil
}

// nextMover - who moves next on board given that X moved first, and how
// many moves were made.
func nextMover(board *entity.Board) (entity.Sign, int, error) {
	var x, o int
	for _, sign := range board.All() {
		switch sign {
		case entity.SignX:
			x++
		case entity.SignO:
			o++
		}
	}

	switch x - o {
	case 0:
		return firstMover, x + o, nil
	case 1:
		return entity.MustNext(firstMover), x + o, nil
	default:
		return entity.SignEmpty, 0, fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidSnapshot, x, o)
	}
}
