package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSelected Phase = "selected"
	PhaseMoved    Phase = "moved"
	PhaseEnded    Phase = "ended"
)

type Result string

const (
	ResultNone      Result = ""
	ResultWhiteWins Result = "white wins"
	ResultBlackWins Result = "black wins"
	ResultDraw      Result = "draw"
)

func winner(c Color) Result {
	if c == White {
		return ResultWhiteWins
	}
	return ResultBlackWins
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Game is the turn controller. It is not safe for concurrent use: each
// Select, AttemptMove or Click runs to completion, and hosts with several
// goroutines must serialise calls.
type Game struct {
	board    *Board
	toMove   Color
	first    Color
	phase    Phase
	selected *Piece
	history  []MoveRecord
	captured CapturedPieces
	result   Result
	log      zerolog.Logger
}

type Option func(*Game)

func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) {
		g.log = log
	}
}

// WithSideToMove sets who moves first; white by default.
func WithSideToMove(c Color) Option {
	return func(g *Game) {
		g.toMove = c
	}
}

func NewGame(pieces []Piece, opts ...Option) (*Game, error) {
	board, err := NewBoard(pieces)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:  board,
		toMove: White,
		phase:  PhaseIdle,
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		history: make([]MoveRecord, 0),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.toMove.Valid() {
		return nil, fmt.Errorf("%w: side to move %q", ErrUnknownPiece, g.toMove)
	}
	g.first = g.toMove
	g.regenerate(g.position())
	return g, nil
}

func (g *Game) position() Position {
	pos := Position{Board: g.board}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		pos.Last = &last
	}
	return pos
}

// Click is the single pointer entry point: it attempts a move while a piece
// is selected and a selection otherwise.
func (g *Game) Click(c Cell) bool {
	if g.phase == PhaseSelected {
		return g.AttemptMove(c)
	}
	return g.Select(c)
}

// Select picks the piece on c if it belongs to the side to move. Any other
// cell clears the selection. It reports whether a piece is now selected.
func (g *Game) Select(c Cell) bool {
	if g.phase == PhaseEnded {
		return false
	}
	g.selected = nil
	g.phase = PhaseIdle

	occ := g.board.OccupantAt(c)
	if occ.State != Occupied || occ.Piece.Color != g.toMove {
		return false
	}
	occ.Piece.moves = g.position().LegalMoves(occ.Piece)
	g.selected = occ.Piece
	g.phase = PhaseSelected
	return true
}

// AttemptMove plays the selected piece to c when c is one of its legal
// destinations. Otherwise the click is treated as a new selection. It
// reports whether a move was executed.
func (g *Game) AttemptMove(c Cell) bool {
	if g.phase == PhaseEnded {
		return false
	}
	if g.phase != PhaseSelected || !g.selected.CanReach(c) {
		g.Select(c)
		return false
	}
	g.execute(g.selected, c)
	return true
}

func (g *Game) execute(piece *Piece, dst Cell) {
	before := g.position()
	record := MoveRecord{
		Kind:  piece.Kind,
		Color: piece.Color,
		From:  piece.Cell,
		To:    dst,
	}
	others := rivals(g.board, piece, dst)

	victim := g.board.OccupantAt(dst).Piece
	if victim == nil {
		if victim = before.EnPassantVictim(piece, dst); victim != nil {
			record.Flags |= FlagEnPassant
		}
	}
	if victim != nil {
		record.Flags |= FlagCapture
		g.board.Remove(victim)
		g.capture(piece.Color, victim)
	}
	g.board.Relocate(piece, dst)

	g.toMove = g.toMove.Opposite()
	g.selected = nil
	g.phase = PhaseMoved

	after := Position{Board: g.board, Last: &record}
	g.regenerate(after)

	inCheck := after.InCheck(g.toMove)
	switch {
	case inCheck && !g.hasCachedMoves(g.toMove):
		record.Flags |= FlagCheckmate
		g.result = winner(piece.Color)
	case g.IsDraw():
		record.Flags |= FlagDraw
		g.result = ResultDraw
	case inCheck:
		record.Flags |= FlagCheck
	}
	record.Notation = algebraicNotation(record, others)
	g.history = append(g.history, record)

	g.log.Debug().
		Str("notation", record.Notation).
		Str("color", string(record.Color)).
		Str("from", record.From.String()).
		Str("to", record.To.String()).
		Msg("move executed")

	if g.result != ResultNone {
		g.phase = PhaseEnded
		g.log.Info().Str("result", string(g.result)).Msg("game over")
		return
	}
	g.phase = PhaseIdle
}

func (g *Game) capture(by Color, victim *Piece) {
	cp := victim.snapshot()
	cp.moves = nil
	if by == White {
		g.captured.White = append(g.captured.White, cp)
	} else {
		g.captured.Black = append(g.captured.Black, cp)
	}
}

// regenerate recomputes the legal-move cache of every piece; a move can open
// or close lines for pieces other than the mover.
func (g *Game) regenerate(pos Position) {
	for _, piece := range g.board.Pieces() {
		piece.moves = pos.LegalMoves(piece)
	}
}

func (g *Game) hasCachedMoves(color Color) bool {
	for _, piece := range g.board.PiecesOf(color) {
		if len(piece.moves) > 0 {
			return true
		}
	}
	return false
}

// IsDraw is the draw-detection hook. Stalemate and insufficient material
// are not detected, so it always reports false.
func (g *Game) IsDraw() bool {
	return false
}

// LegalMoves computes the legal destinations of the piece on c. It is empty
// for empty or off-board cells.
func (g *Game) LegalMoves(c Cell) []Cell {
	occ := g.board.OccupantAt(c)
	if occ.State != Occupied {
		return []Cell{}
	}
	return g.position().LegalMoves(occ.Piece)
}

func (g *Game) InCheck(color Color) bool {
	return g.position().InCheck(color)
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) SideToMove() Color {
	return g.toMove
}

func (g *Game) Result() Result {
	return g.result
}

// Selected returns a copy of the selected piece.
func (g *Game) Selected() (Piece, bool) {
	if g.selected == nil {
		return Piece{}, false
	}
	return g.selected.snapshot(), true
}

func (g *Game) Pieces() []Piece {
	out := make([]Piece, 0, len(g.board.pieces))
	for _, p := range g.board.pieces {
		out = append(out, p.snapshot())
	}
	return out
}

func (g *Game) History() []MoveRecord {
	return slices.Clone(g.history)
}

func (g *Game) Notation() []string {
	out := make([]string, 0, len(g.history))
	for _, m := range g.history {
		out = append(out, m.Notation)
	}
	return out
}

func (g *Game) LastMove() (MoveRecord, bool) {
	if len(g.history) == 0 {
		return MoveRecord{}, false
	}
	return g.history[len(g.history)-1], true
}

func (g *Game) Captured() CapturedPieces {
	return CapturedPieces{
		White: slices.Clone(g.captured.White),
		Black: slices.Clone(g.captured.Black),
	}
}

// FEN describes the position in Forsyth-Edwards notation. Castling rights are
// always "-" and the halfmove clock is always 0.
func (g *Game) FEN() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		emptyRun := 0
		for file := byte('a'); file <= 'h'; file++ {
			occ := g.board.OccupantAt(NewCell(file, rank))
			if occ.State != Occupied {
				emptyRun++
				continue
			}
			if emptyRun > 0 {
				fmt.Fprintf(&sb, "%d", emptyRun)
				emptyRun = 0
			}
			sb.WriteString(pieceLetter(occ.Piece))
		}
		if emptyRun > 0 {
			fmt.Fprintf(&sb, "%d", emptyRun)
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if g.toMove == Black {
		side = "b"
	}
	ep := "-"
	if target, ok := g.position().enPassantTarget(); ok {
		ep = target.String()
	}
	fmt.Fprintf(&sb, " %s - %s 0 %d", side, ep, g.fullmove())
	return sb.String()
}

// fullmove is the FEN move number: it starts at 1 and increments after black moves.
func (g *Game) fullmove() int {
	plies := len(g.history)
	if g.first == Black {
		plies++
	}
	return plies/2 + 1
}

func (g *Game) String() string {
	return g.board.String()
}
