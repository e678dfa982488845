// Package loader reads starting positions from board files.
//
// A board file has eight lines, rank 8 first. Each line holds eight
// two-character tokens, file a first: "0" followed by any pad character for
// an empty square, or a colour letter (W or B) followed by a piece letter
// (K, Q, B, N, R, P).
package loader

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid board token")
	ErrRowLength    = errors.New("board row must hold 8 tokens")
	ErrRowCount     = errors.New("board must have 8 rows")
)

//go:embed boards/default.txt
var defaultBoard string

// Default returns the standard starting layout.
func Default() []model.Piece {
	pieces, err := Parse(strings.NewReader(defaultBoard))
	if err != nil {
		panic(fmt.Sprintf("embedded default board: %v", err))
	}
	return pieces
}

func Load(path string) ([]model.Piece, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board %s: %w", path, err)
	}
	defer f.Close()

	pieces, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", path, err)
	}
	return pieces, nil
}

// Parse reads a board. Trailing blank lines are ignored.
func Parse(r io.Reader) ([]model.Piece, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return ParseRows(rows)
}

// ParseRows reads a board already split into lines, rank 8 first.
func ParseRows(rows []string) ([]model.Piece, error) {
	if len(rows) != 8 {
		return nil, fmt.Errorf("%w: got %d", ErrRowCount, len(rows))
	}
	pieces := []model.Piece{}
	for i, row := range rows {
		rank := 8 - i
		if len(row) != 16 {
			return nil, fmt.Errorf("%w: rank %d has %d characters", ErrRowLength, rank, len(row))
		}
		for col := 0; col < 8; col++ {
			token := row[2*col : 2*col+2]
			cell := model.NewCell(byte('a'+col), rank)
			piece, ok, err := parseToken(token)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", cell, err)
			}
			if !ok {
				continue
			}
			piece.Cell = cell
			pieces = append(pieces, piece)
		}
	}
	return pieces, nil
}

func parseToken(token string) (model.Piece, bool, error) {
	var color model.Color
	switch token[0] {
	case '0':
		return model.Piece{}, false, nil
	case 'W':
		color = model.White
	case 'B':
		color = model.Black
	default:
		return model.Piece{}, false, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	kind, err := model.KindFromLetter(token[1])
	if err != nil {
		return model.Piece{}, false, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	return model.Piece{Kind: kind, Color: color}, true, nil
}
