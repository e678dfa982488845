package model

// Position is a board together with the move that produced it. The last move
// is the only source of en passant eligibility.
type Position struct {
	Board *Board
	Last  *MoveRecord
}

// PseudoLegalMoves lists the destinations a piece may move to by its movement
// rules and the board's occupancy, without regard to its own king's safety.
func (pos Position) PseudoLegalMoves(piece *Piece) []Cell {
	switch piece.Kind {
	case Pawn:
		return pos.pawnMoves(piece)
	case Knight:
		return pos.stepMoves(piece, knightOffsets)
	case Bishop:
		return pos.slidingMoves(piece, bishopDirections)
	case Rook:
		return pos.slidingMoves(piece, rookDirections)
	case Queen:
		return pos.slidingMoves(piece, queenDirections)
	case King:
		return pos.stepMoves(piece, kingOffsets)
	default:
		return []Cell{}
	}
}

func (pos Position) stepMoves(piece *Piece, offsets []offset) []Cell {
	moves := []Cell{}
	for _, o := range offsets {
		target := piece.Cell.Offset(o.df, o.dr)
		occ := pos.Board.OccupantAt(target)
		if occ.IsEmpty() || occ.IsEnemyOf(piece.Color) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (pos Position) slidingMoves(piece *Piece, directions []offset) []Cell {
	moves := []Cell{}
	for _, dir := range directions {
		target := piece.Cell.Offset(dir.df, dir.dr)
		for {
			occ := pos.Board.OccupantAt(target)
			if occ.IsEmpty() {
				moves = append(moves, target)
			} else if occ.IsEnemyOf(piece.Color) {
				moves = append(moves, target)
				break
			} else {
				break
			}
			target = target.Offset(dir.df, dir.dr)
		}
	}
	return moves
}

func (pos Position) pawnMoves(piece *Piece) []Cell {
	moves := []Cell{}
	dir := piece.Color.pawnDirection()

	// forward 1, then forward 2 from the starting rank through an empty cell
	one := piece.Cell.Offset(0, dir)
	if pos.Board.OccupantAt(one).IsEmpty() {
		moves = append(moves, one)
		if piece.Cell.Rank == piece.Color.pawnStartRank() {
			two := piece.Cell.Offset(0, 2*dir)
			if pos.Board.OccupantAt(two).IsEmpty() {
				moves = append(moves, two)
			}
		}
	}

	for _, df := range []int{-1, 1} {
		target := piece.Cell.Offset(df, dir)
		if pos.Board.OccupantAt(target).IsEnemyOf(piece.Color) || pos.EnPassantVictim(piece, target) != nil {
			moves = append(moves, target)
		}
	}
	return moves
}

// EnPassantVictim returns the pawn that piece would capture en passant by
// moving to dst, or nil. The capture is available only immediately after the
// enemy pawn's double step from its starting rank to a cell beside piece.
func (pos Position) EnPassantVictim(piece *Piece, dst Cell) *Piece {
	last := pos.Last
	if piece.Kind != Pawn || last == nil || last.Kind != Pawn || last.Color == piece.Color {
		return nil
	}
	if !last.isDoubleStep() {
		return nil
	}
	if last.To.Rank != piece.Cell.Rank || abs(int(last.To.File)-int(piece.Cell.File)) != 1 {
		return nil
	}
	if dst != last.To.Offset(0, piece.Color.pawnDirection()) {
		return nil
	}
	occ := pos.Board.OccupantAt(last.To)
	if occ.State != Occupied || occ.Piece.Kind != Pawn || occ.Piece.Color == piece.Color {
		return nil
	}
	if !pos.Board.OccupantAt(dst).IsEmpty() {
		return nil
	}
	return occ.Piece
}

// enPassantTarget is the cell passed over by the last move's double step, if any.
func (pos Position) enPassantTarget() (Cell, bool) {
	if pos.Last == nil || pos.Last.Kind != Pawn || !pos.Last.isDoubleStep() {
		return Cell{}, false
	}
	return pos.Last.From.Offset(0, pos.Last.Color.pawnDirection()), true
}
