package model

// Snapshot is everything a renderer needs to redraw the game after an input
// event has been processed.
type Snapshot struct {
	Pieces         []Piece        `json:"pieces"`
	Selected       *Cell          `json:"selectedSquare"`
	LegalMoves     []Cell         `json:"legalMoves"`
	Phase          Phase          `json:"phase"`
	ToMove         Color          `json:"toMove"`
	IsCheck        bool           `json:"isCheck"`
	MoveHistory    []string       `json:"moveHistory"`
	LastMove       *MoveRecord    `json:"lastMove"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Resolve        Result         `json:"resolve"`
	FEN            string         `json:"fen"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Pieces:         g.Pieces(),
		LegalMoves:     make([]Cell, 0),
		Phase:          g.phase,
		ToMove:         g.toMove,
		IsCheck:        g.InCheck(g.toMove),
		MoveHistory:    g.Notation(),
		CapturedPieces: g.Captured(),
		Resolve:        g.result,
		FEN:            g.FEN(),
	}
	if g.selected != nil {
		cell := g.selected.Cell
		s.Selected = &cell
		s.LegalMoves = g.selected.Moves()
	}
	if last, ok := g.LastMove(); ok {
		s.LastMove = &last
	}
	return s
}
