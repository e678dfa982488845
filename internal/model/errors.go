package model

import "errors"

var (
	// ErrInvalidCell is returned when square notation cannot be parsed.
	ErrInvalidCell = errors.New("invalid cell")

	// ErrOffBoardPiece is returned when a starting piece sits outside the 8x8 board.
	ErrOffBoardPiece = errors.New("piece placed off the board")

	// ErrDuplicateCell is returned when two starting pieces share a cell.
	ErrDuplicateCell = errors.New("two pieces share a cell")

	// ErrUnknownPiece is returned for a piece kind or colour outside the closed set.
	ErrUnknownPiece = errors.New("unknown piece")
)
