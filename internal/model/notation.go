package model

import (
	"strings"
)

const enPassantMarker = " e.p."

// algebraicNotation renders a move in standard algebraic notation. rivals are
// the origin cells of other same-kind, same-colour pieces that could also
// have reached the destination.
func algebraicNotation(move MoveRecord, rivals []Cell) string {
	var sb strings.Builder
	capture := move.Flags.Has(FlagCapture)
	if move.Kind == Pawn {
		if capture {
			sb.WriteString(move.From.fileNotation())
		}
	} else {
		sb.WriteString(move.Kind.notationPrefix())
		sb.WriteString(disambiguation(move.From, rivals))
	}
	if capture {
		sb.WriteString("x")
	}
	sb.WriteString(move.To.String())
	if move.Flags.Has(FlagEnPassant) {
		sb.WriteString(enPassantMarker)
	}
	return sb.String()
}

// disambiguation picks the origin file if it is unique among the rivals, else
// the origin rank if that is unique, else both.
func disambiguation(from Cell, rivals []Cell) string {
	if len(rivals) == 0 {
		return ""
	}
	sharesFile, sharesRank := false, false
	for _, r := range rivals {
		if r.File == from.File {
			sharesFile = true
		}
		if r.Rank == from.Rank {
			sharesRank = true
		}
	}
	switch {
	case !sharesFile:
		return from.fileNotation()
	case !sharesRank:
		return from.rankNotation()
	default:
		return from.String()
	}
}

// rivals collects the pieces that also had dst among their cached legal moves.
// It must run before the board is mutated for the move.
func rivals(b *Board, mover *Piece, dst Cell) []Cell {
	cells := []Cell{}
	for _, p := range b.pieces {
		if p == mover || p.Kind != mover.Kind || p.Color != mover.Color {
			continue
		}
		if p.CanReach(dst) {
			cells = append(cells, p.Cell)
		}
	}
	return cells
}
