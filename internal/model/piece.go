package model

import (
	"fmt"
	"slices"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// pawnDirection is the rank delta of a forward pawn step: white moves up, black down.
func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) pawnStartRank() int {
	if c == White {
		return 2
	}
	return 7
}

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

// Letter is the English piece letter used by board files and FEN.
func (k PieceKind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// notationPrefix omits the letter for pawns, as algebraic notation does.
func (k PieceKind) notationPrefix() string {
	if k == Pawn {
		return ""
	}
	return k.Letter()
}

func (k PieceKind) Valid() bool {
	return k.Letter() != ""
}

// KindFromLetter maps K, Q, R, B, N, P to a piece kind.
func KindFromLetter(letter byte) (PieceKind, error) {
	switch letter {
	case 'K':
		return King, nil
	case 'Q':
		return Queen, nil
	case 'R':
		return Rook, nil
	case 'B':
		return Bishop, nil
	case 'N':
		return Knight, nil
	case 'P':
		return Pawn, nil
	}
	return "", fmt.Errorf("%w: letter %q", ErrUnknownPiece, letter)
}

// Piece is owned by a Board. Its ID is assigned by the board and never
// changes, so references held across moves stay valid.
type Piece struct {
	ID    int       `json:"id"`
	Kind  PieceKind `json:"type"`
	Color Color     `json:"color"`
	Cell  Cell      `json:"cell"`

	// legal destinations as of the last regeneration pass
	moves []Cell
}

// Moves returns the cached legal destinations from the last regeneration.
func (p *Piece) Moves() []Cell {
	return slices.Clone(p.moves)
}

func (p *Piece) CanReach(c Cell) bool {
	return slices.Contains(p.moves, c)
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s on %s", p.Color, p.Kind, p.Cell)
}

// snapshot copies the piece so callers cannot reach board state through it.
func (p *Piece) snapshot() Piece {
	cp := *p
	cp.moves = slices.Clone(p.moves)
	return cp
}
