package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrGameOver         = errors.New("game is already over")
	ErrUnknownKey       = errors.New("key is not mapped")
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidSnapshot  = errors.New("invalid game snapshot")
)
