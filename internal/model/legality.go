package model

// LegalMoves filters the pseudo-legal destinations of piece down to those
// that do not leave its own king in check.
func (pos Position) LegalMoves(piece *Piece) []Cell {
	pseudoMoves := pos.PseudoLegalMoves(piece)
	legalMoves := make([]Cell, 0, len(pseudoMoves))
	for _, dst := range pseudoMoves {
		if !pos.exposesKing(piece, dst) {
			legalMoves = append(legalMoves, dst)
		}
	}
	return legalMoves
}

// exposesKing plays piece to dst on the board, tests its king, and restores
// the board exactly, including the captured piece's slot.
func (pos Position) exposesKing(piece *Piece, dst Cell) bool {
	origin := piece.Cell
	captured := pos.Board.OccupantAt(dst).Piece
	if captured == nil {
		captured = pos.EnPassantVictim(piece, dst)
	}

	// execute temp move
	slot := -1
	if captured != nil {
		slot = pos.Board.detach(captured)
	}
	pos.Board.Relocate(piece, dst)

	inCheck := pos.InCheck(piece.Color)

	// revert temp move
	pos.Board.Relocate(piece, origin)
	if captured != nil {
		pos.Board.attach(captured, slot)
	}
	return inCheck
}

// HasLegalMoves reports whether any piece of color has a legal move.
func (pos Position) HasLegalMoves(color Color) bool {
	for _, piece := range pos.Board.PiecesOf(color) {
		if len(pos.LegalMoves(piece)) > 0 {
			return true
		}
	}
	return false
}
