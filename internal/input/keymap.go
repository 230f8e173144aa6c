package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

type Kind uint8

const (
	KindMove Kind = iota + 1
	KindReset
	KindQuit
)

func (that Kind) String() string {
	switch that {
	case KindMove:
		return "move"
	case KindReset:
		return "reset"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a validated request for the game. Cell is set for moves only.
type Command struct {
	Kind Kind
	Cell entity.Cell
}

// Keymap turns raw key names into commands for a board of a given size.
type Keymap struct {
	dim  int
	keys map[string]Command
}

// NewKeymap - builds the key table for dim. A 3x3 board gets the numeric
// keypad layout (7 8 9 on the top row); every size accepts "col,row".
func NewKeymap(dim int) *Keymap {
	keys := map[string]Command{
		"r":      {Kind: KindReset},
		"reset":  {Kind: KindReset},
		"q":      {Kind: KindQuit},
		"quit":   {Kind: KindQuit},
		"esc":    {Kind: KindQuit},
		"escape": {Kind: KindQuit},
	}

	if dim == entity.DefaultDimension {
		for row, digits := range []string{"789", "456", "123"} {
			for col, digit := range digits {
				move := Command{Kind: KindMove, Cell: entity.Cell{Col: col, Row: row}}
				keys[string(digit)] = move
				keys["kp"+string(digit)] = move
			}
		}
	}

	return &Keymap{dim: dim, keys: keys}
}

// Parse - maps a key to a command. Moves are checked against the board size
// but not against the board contents.
func (that *Keymap) Parse(key string) (Command, error) {
	name := strings.ToLower(strings.TrimSpace(key))

	if command, ok := that.keys[name]; ok {
		return command, nil
	}

	col, row, ok := strings.Cut(name, ",")
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownKey, key)
	}

	cell, err := parseCell(col, row)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q: %w", apperror.ErrUnknownKey, key, err)
	}

	if !cell.InBounds(that.dim) {
		return Command{}, fmt.Errorf("%w: %s on a %dx%d board", apperror.ErrOutOfBounds, cell, that.dim, that.dim)
	}

	return Command{Kind: KindMove, Cell: cell}, nil
}

func (that *Keymap) Dim() int {
	return that.dim
}

// KeyFor - the keypad key bound to cell, empty when there is none.
func (that *Keymap) KeyFor(cell entity.Cell) string {
	for name, command := range that.keys {
		if command.Kind == KindMove && command.Cell == cell && !strings.HasPrefix(name, "kp") {
			return name
		}
	}

	return ""
}

func parseCell(col, row string) (entity.Cell, error) {
	c, err := strconv.Atoi(strings.TrimSpace(col))
	if err != nil {
		return entity.Cell{}, fmt.Errorf("bad column: %w", err)
	}

	r, err := strconv.Atoi(strings.TrimSpace(row))
	if err != nil {
		return entity.Cell{}, fmt.Errorf("bad row: %w", err)
	}

	return entity.Cell{Col: c, Row: r}, nil
}
