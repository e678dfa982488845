package model

import (
	"encoding/json"
)

type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagCheck
	FlagCheckmate
	FlagDraw
)

var flagNames = []struct {
	flag MoveFlag
	name string
}{
	{FlagCapture, "capture"},
	{FlagEnPassant, "enPassant"},
	{FlagCheck, "check"},
	{FlagCheckmate, "checkmate"},
	{FlagDraw, "draw"},
}

func (f MoveFlag) Has(flag MoveFlag) bool {
	return f&flag == flag
}

func (f MoveFlag) Names() []string {
	names := []string{}
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

func (f MoveFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

// MoveRecord describes one executed ply. Records are appended to a game's
// history and never modified afterwards.
type MoveRecord struct {
	Kind     PieceKind `json:"type"`
	Color    Color     `json:"color"`
	From     Cell      `json:"from"`
	To       Cell      `json:"to"`
	Flags    MoveFlag  `json:"flags"`
	Notation string    `json:"notation"`
}

func (m MoveRecord) isDoubleStep() bool {
	return m.Kind == Pawn &&
		m.From.Rank == m.Color.pawnStartRank() &&
		m.To.Rank-m.From.Rank == 2*m.Color.pawnDirection() &&
		m.To.File == m.From.File
}

// DisplayNotation is the notation with a check or mate suffix, for presentation.
func (m MoveRecord) DisplayNotation() string {
	switch {
	case m.Flags.Has(FlagCheckmate):
		return m.Notation + "#"
	case m.Flags.Has(FlagCheck):
		return m.Notation + "+"
	}
	return m.Notation
}
