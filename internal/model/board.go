package model

import (
	"fmt"
	"strings"
)

type OccupantState int

const (
	Empty OccupantState = iota
	Occupied
	OffBoard
)

// Occupant is the result of looking up a cell. Piece is set only when State is Occupied.
type Occupant struct {
	State OccupantState
	Piece *Piece
}

func (o Occupant) IsEmpty() bool {
	return o.State == Empty
}

// IsEnemyOf reports whether the cell holds a piece capturable by color.
func (o Occupant) IsEnemyOf(color Color) bool {
	return o.State == Occupied && o.Piece.Color != color
}

// Board is the authoritative set of live pieces. No two pieces share a cell.
type Board struct {
	pieces []*Piece
}

// NewBoard takes ownership of copies of pieces, assigning each a stable ID.
func NewBoard(pieces []Piece) (*Board, error) {
	b := &Board{pieces: make([]*Piece, 0, len(pieces))}
	for i, p := range pieces {
		if !p.Kind.Valid() || !p.Color.Valid() {
			return nil, fmt.Errorf("%w: %q %q", ErrUnknownPiece, p.Color, p.Kind)
		}
		if !p.Cell.OnBoard() {
			return nil, fmt.Errorf("%w: %s", ErrOffBoardPiece, p.Cell)
		}
		if b.OccupantAt(p.Cell).State == Occupied {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCell, p.Cell)
		}
		b.pieces = append(b.pieces, &Piece{ID: i + 1, Kind: p.Kind, Color: p.Color, Cell: p.Cell})
	}
	return b, nil
}

func (b *Board) OccupantAt(c Cell) Occupant {
	if !c.OnBoard() {
		return Occupant{State: OffBoard}
	}
	for _, p := range b.pieces {
		if p.Cell == c {
			return Occupant{State: Occupied, Piece: p}
		}
	}
	return Occupant{State: Empty}
}

// Remove deletes the piece by identity. It reports whether the piece was on the board.
func (b *Board) Remove(p *Piece) bool {
	return b.detach(p) >= 0
}

// Relocate moves the piece in place; identity and cached moves are kept.
func (b *Board) Relocate(p *Piece, dst Cell) {
	p.Cell = dst
}

// Pieces returns the live pieces. The slice is a copy; the pieces are not.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

func (b *Board) PiecesOf(color Color) []*Piece {
	out := []*Piece{}
	for _, p := range b.pieces {
		if p.Color == color {
			out = append(out, p)
		}
	}
	return out
}

// King returns the first king of color, or nil when there is none.
func (b *Board) King(color Color) *Piece {
	for _, p := range b.pieces {
		if p.Kind == King && p.Color == color {
			return p
		}
	}
	return nil
}

func (b *Board) detach(p *Piece) int {
	for i, candidate := range b.pieces {
		if candidate == p {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			return i
		}
	}
	return -1
}

// attach reinserts a detached piece at its former index so iteration order is unchanged.
func (b *Board) attach(p *Piece, index int) {
	if index < 0 || index > len(b.pieces) {
		index = len(b.pieces)
	}
	b.pieces = append(b.pieces, nil)
	copy(b.pieces[index+1:], b.pieces[index:])
	b.pieces[index] = p
}

// String draws the board rank 8 first, uppercase for white.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		for file := byte('a'); file <= 'h'; file++ {
			occ := b.OccupantAt(NewCell(file, rank))
			if occ.State != Occupied {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(pieceLetter(occ.Piece))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func pieceLetter(p *Piece) string {
	if p.Color == White {
		return p.Kind.Letter()
	}
	return strings.ToLower(p.Kind.Letter())
}
