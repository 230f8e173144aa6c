package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
)

// Sign is the value held by a board cell.
type Sign uint8

const (
	SignEmpty Sign = iota
	SignX
	SignO
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	EmptyCell = ""
)

// Next - returns the sign that moves after s. Empty has no successor.
func Next(s Sign) (Sign, error) {
	switch s {
	case SignX:
		return SignO, nil
	case SignO:
		return SignX, nil
	case SignEmpty:
		return SignEmpty, fmt.Errorf("%w: flip of an empty sign", apperror.ErrInvalidOperation)
	default:
		return SignEmpty, fmt.Errorf("%w: flip of unknown sign %d", apperror.ErrInvalidOperation, s)
	}
}

// MustNext - like Next but panics, for callers that already hold X or O.
func MustNext(s Sign) Sign {
	next, err := Next(s)
	if err != nil {
		panic(err)
	}

	return next
}

func (that Sign) IsEmpty() bool {
	return that == SignEmpty
}

func (that Sign) IsValid() bool {
	return that <= SignO
}

func (that Sign) String() string {
	switch that {
	case SignX:
		return PlayerX
	case SignO:
		return PlayerO
	case SignEmpty:
		return EmptyCell
	default:
		return fmt.Sprintf("Sign(%d)", uint8(that))
	}
}

func (that Sign) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return nil, fmt.Errorf("%w: sign %d", apperror.ErrInvalidOperation, uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *Sign) UnmarshalText(text []byte) error {
	sign, err := ParseSign(string(text))
	if err != nil {
		return err
	}

	*that = sign

	return nil
}

// ParseSign - converts "X", "O" or "" into a Sign.
func ParseSign(value string) (Sign, error) {
	switch value {
	case PlayerX:
		return SignX, nil
	case PlayerO:
		return SignO, nil
	case EmptyCell:
		return SignEmpty, nil
	default:
		return SignEmpty, fmt.Errorf("%w: unknown sign %q", apperror.ErrInvalidOperation, value)
	}
}
