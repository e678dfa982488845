package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/testutil"
)

func TestDefault(t *testing.T) {
	pieces := Default()
	testutil.AssertEqual(t, len(pieces), 32)

	byCell := map[string]model.Piece{}
	for _, p := range pieces {
		byCell[p.Cell.String()] = p
	}
	tests := []struct {
		cell  string
		kind  model.PieceKind
		color model.Color
	}{
		{"e1", model.King, model.White},
		{"d1", model.Queen, model.White},
		{"e8", model.King, model.Black},
		{"b8", model.Knight, model.Black},
		{"h2", model.Pawn, model.White},
		{"a7", model.Pawn, model.Black},
		{"c1", model.Bishop, model.White},
		{"h8", model.Rook, model.Black},
	}
	for _, tt := range tests {
		p, ok := byCell[tt.cell]
		if !ok {
			t.Errorf("%s is empty", tt.cell)
			continue
		}
		if p.Kind != tt.kind || p.Color != tt.color {
			t.Errorf("%s = %s %s, want %s %s", tt.cell, p.Color, p.Kind, tt.color, tt.kind)
		}
	}
}

func TestParse(t *testing.T) {
	board := strings.Join([]string{
		"00000000BK000000",
		"0-0-0-0-0-0-0-0-",
		"0000000000000000",
		"0000000000000000",
		"0000000000000000",
		"0000000000000000",
		"0000000000000000",
		"00000000WK0000WR",
		"",
		"",
	}, "\n")
	pieces, err := Parse(strings.NewReader(board))
	testutil.AssertNoError(t, err)

	want := []model.Piece{
		{Kind: model.King, Color: model.Black, Cell: model.NewCell('e', 8)},
		{Kind: model.King, Color: model.White, Cell: model.NewCell('e', 1)},
		{Kind: model.Rook, Color: model.White, Cell: model.NewCell('h', 1)},
	}
	testutil.AssertEqual(t, len(pieces), len(want))
	for i := range want {
		if pieces[i].Kind != want[i].Kind || pieces[i].Color != want[i].Color || pieces[i].Cell != want[i].Cell {
			t.Errorf("piece %d = %v, want %v", i, pieces[i], want[i])
		}
	}
}

func TestParseRowsErrors(t *testing.T) {
	empty := "0000000000000000"
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"too few rows", []string{empty, empty}, ErrRowCount},
		{"short row", []string{empty, empty, empty, "000000", empty, empty, empty, empty}, ErrRowLength},
		{"bad colour", []string{empty, empty, empty, "XK00000000000000", empty, empty, empty, empty}, ErrInvalidToken},
		{"bad piece", []string{empty, empty, empty, "WZ00000000000000", empty, empty, empty, empty}, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRows(tt.rows)
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.txt")
	if err := os.WriteFile(path, []byte(defaultBoard), 0o644); err != nil {
		t.Fatal(err)
	}
	pieces, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(pieces), 32)

	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}
