package model

import (
	"fmt"
)

// Cell is a square addressed by file ('a'..'h') and rank (1..8). Cells outside
// that range are valid values; the board reports them as off-board.
type Cell struct {
	File byte
	Rank int
}

func NewCell(file byte, rank int) Cell {
	return Cell{File: file, Rank: rank}
}

// ParseCell reads algebraic square notation such as "e4".
func ParseCell(s string) (Cell, error) {
	if len(s) != 2 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	c := Cell{File: s[0], Rank: int(s[1] - '0')}
	if !c.OnBoard() {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	return c, nil
}

func (c Cell) OnBoard() bool {
	return c.File >= 'a' && c.File <= 'h' && c.Rank >= 1 && c.Rank <= 8
}

// Offset returns the cell df files and dr ranks away. The result may be off-board.
func (c Cell) Offset(df, dr int) Cell {
	return Cell{File: byte(int(c.File) + df), Rank: c.Rank + dr}
}

func (c Cell) String() string {
	return fmt.Sprintf("%c%d", c.File, c.Rank)
}

func (c Cell) fileNotation() string {
	return fmt.Sprintf("%c", c.File)
}

func (c Cell) rankNotation() string {
	return fmt.Sprintf("%d", c.Rank)
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	parsed, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type offset struct {
	df, dr int
}

var (
	rookDirections   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = append(append([]offset{}, rookDirections...), bishopDirections...)
	kingOffsets      = queenDirections
	knightOffsets    = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
