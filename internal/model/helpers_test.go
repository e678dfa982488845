package model_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/benbeisheim/chessmaster-backend/internal/loader"
	"github.com/benbeisheim/chessmaster-backend/internal/model"
)

// setup builds a game from a placement such as {"e1": "WK", "e8": "BK"}.
func setup(t *testing.T, side model.Color, placement map[string]string) *model.Game {
	t.Helper()
	rows := make([]string, 8)
	for i := range rows {
		rank := 8 - i
		var sb strings.Builder
		for file := byte('a'); file <= 'h'; file++ {
			token, ok := placement[fmt.Sprintf("%c%d", file, rank)]
			if !ok {
				token = "00"
			}
			sb.WriteString(token)
		}
		rows[i] = sb.String()
	}
	pieces, err := loader.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	g, err := model.NewGame(pieces, model.WithSideToMove(side))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func newStandardGame(t *testing.T) *model.Game {
	t.Helper()
	g, err := model.NewGame(loader.Default())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func cell(t *testing.T, s string) model.Cell {
	t.Helper()
	c, err := model.ParseCell(s)
	if err != nil {
		t.Fatalf("ParseCell(%q): %v", s, err)
	}
	return c
}

// play executes moves written as origin+destination, e.g. "e2e4".
func play(t *testing.T, g *model.Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		from, to := cell(t, m[:2]), cell(t, m[2:])
		if !g.Select(from) {
			t.Fatalf("Select(%s) failed for move %s\n%s", from, m, g)
		}
		if !g.AttemptMove(to) {
			t.Fatalf("AttemptMove(%s) failed for move %s, legal %v\n%s", to, m, g.LegalMoves(from), g)
		}
	}
}

func cellNames(cells []model.Cell) []string {
	names := make([]string, 0, len(cells))
	for _, c := range cells {
		names = append(names, c.String())
	}
	sort.Strings(names)
	return names
}

func sorted(names ...string) []string {
	out := append([]string{}, names...)
	sort.Strings(out)
	return out
}
