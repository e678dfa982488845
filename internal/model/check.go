package model

// IsAttacked reports whether any piece of color by has c among its
// pseudo-legal destinations. It never consults legality, which itself
// depends on attack detection.
func (pos Position) IsAttacked(c Cell, by Color) bool {
	attackers := Position{Board: pos.Board}
	for _, piece := range pos.Board.pieces {
		if piece.Color != by {
			continue
		}
		for _, target := range attackers.PseudoLegalMoves(piece) {
			if target == c {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether color's king is attacked. A side with no king is never in check.
func (pos Position) InCheck(color Color) bool {
	king := pos.Board.King(color)
	if king == nil {
		return false
	}
	return pos.IsAttacked(king.Cell, color.Opposite())
}
