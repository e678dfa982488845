package model

// Player is a queued matchmaking entry; colours are assigned by Seats.
type Player struct {
	ID string
}

// ClientPlayer is the seat information sent to clients.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

type Seats struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (s *Seats) Seat(c Color) *ClientPlayer {
	if c == White {
		return &s.White
	}
	return &s.Black
}

// ColorOf returns the colour seated by playerID.
func (s *Seats) ColorOf(playerID string) (Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case s.White.ID == playerID:
		return White, true
	case s.Black.ID == playerID:
		return Black, true
	}
	return "", false
}

// MatchFoundEvent is sent to each player paired by matchmaking.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
