package model_test

import (
	"testing"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/testutil"
)

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name      string
		placement map[string]string
		from      string
		want      []string
	}{
		{
			name:      "pinned bishop cannot move",
			placement: map[string]string{"e1": "WK", "e2": "WB", "e8": "BR", "a8": "BK"},
			from:      "e2",
			want:      []string{},
		},
		{
			name:      "pinned rook slides along the pin",
			placement: map[string]string{"e1": "WK", "e3": "WR", "e8": "BR", "a8": "BK"},
			from:      "e3",
			want:      []string{"e2", "e4", "e5", "e6", "e7", "e8"},
		},
		{
			name:      "king may capture an unprotected queen",
			placement: map[string]string{"e1": "WK", "e2": "BQ", "a8": "BK"},
			from:      "e1",
			want:      []string{"e2"},
		},
		{
			name:      "king may not capture a protected queen",
			placement: map[string]string{"e1": "WK", "e2": "BQ", "e8": "BR", "a8": "BK"},
			from:      "e1",
			want:      []string{},
		},
		{
			name:      "king keeps away from pawn attacks",
			placement: map[string]string{"e1": "WK", "e3": "BP", "a8": "BK"},
			from:      "e1",
			want:      []string{"d1", "f1", "e2"},
		},
		{
			name:      "kings keep apart",
			placement: map[string]string{"e4": "WK", "e6": "BK"},
			from:      "e4",
			want:      []string{"d4", "f4", "d3", "e3", "f3"},
		},
		{
			name:      "only blocks and captures answer a check",
			placement: map[string]string{"a1": "WK", "a8": "BR", "c6": "WN", "h8": "BK"},
			from:      "c6",
			want:      []string{"a7", "a5"},
		},
		{
			name:      "no kings means no check",
			placement: map[string]string{"e2": "WB", "e8": "BR"},
			from:      "e2",
			want:      []string{"d1", "f1", "d3", "c4", "b5", "a6", "f3", "g4", "h5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := setup(t, model.White, tt.placement)
			got := g.LegalMoves(cell(t, tt.from))
			testutil.AssertEqual(t, cellNames(got), sorted(tt.want...))
		})
	}
}

func TestLegalMovesIsIdempotent(t *testing.T) {
	g := newStandardGame(t)
	play(t, g, "e2e4", "d7d5")
	for _, from := range []string{"e4", "d1", "f1", "g1", "e1"} {
		first := g.LegalMoves(cell(t, from))
		second := g.LegalMoves(cell(t, from))
		testutil.AssertEqual(t, cellNames(second), cellNames(first))
	}
}

func TestLegalMovesLeavesBoardUntouched(t *testing.T) {
	g := setup(t, model.White, map[string]string{
		"e1": "WK", "d2": "WQ", "d7": "BR", "h8": "BK", "c3": "BN",
	})
	before := g.FEN()
	g.LegalMoves(cell(t, "d2"))
	g.LegalMoves(cell(t, "e1"))
	testutil.AssertEqual(t, g.FEN(), before)
	testutil.AssertEqual(t, len(g.Pieces()), 5)
}

// TestContainment plays every legal move of the side to move on a fresh copy
// of the position and checks the mover's king is never left in check.
func TestContainment(t *testing.T) {
	positions := []map[string]string{
		{"e1": "WK", "e2": "WB", "d2": "WP", "f2": "WN", "e8": "BR", "a8": "BK", "b4": "BB", "h4": "BQ"},
		{"a1": "WK", "b2": "WQ", "c3": "WR", "g7": "BB", "h8": "BK", "a8": "BR", "e5": "BN"},
		{"d4": "WK", "c5": "BP", "e6": "BN", "d8": "BR", "f2": "WP", "h8": "BK"},
	}
	for i, placement := range positions {
		base := setup(t, model.White, placement)
		for _, piece := range base.Pieces() {
			if piece.Color != model.White {
				continue
			}
			for _, dst := range base.LegalMoves(piece.Cell) {
				g := setup(t, model.White, placement)
				if !g.Select(piece.Cell) || !g.AttemptMove(dst) {
					t.Fatalf("position %d: %s to %s was listed legal but not played", i, piece.Cell, dst)
				}
				if g.InCheck(model.White) {
					t.Errorf("position %d: %s to %s leaves the white king in check", i, piece.Cell, dst)
				}
			}
		}
	}
}
