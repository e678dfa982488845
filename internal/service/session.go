package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/ws"
	"github.com/rs/zerolog"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// State is the game snapshot plus the seats, as broadcast to clients.
type State struct {
	model.Snapshot
	Players model.Seats `json:"players"`
}

// Session hosts one game. The rules core is single-threaded, so every input
// event is processed under mu, one at a time. Broadcasts also happen under
// mu, so clients receive states in the order they were produced and no
// connection is written by two events at once.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *model.Game
	seats       model.Seats
	whiteClock  *model.Clock
	blackClock  *model.Clock
	connections map[string]Conn // playerID -> connection
	connMu      sync.RWMutex
	log         zerolog.Logger
}

func NewSession(id string, pieces []model.Piece, clockTime time.Duration, log zerolog.Logger) (*Session, error) {
	log = log.With().Str("game", id).Logger()
	game, err := model.NewGame(pieces, model.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("new game %s: %w", id, err)
	}
	return &Session{
		ID:          id,
		game:        game,
		whiteClock:  model.NewClock(clockTime),
		blackClock:  model.NewClock(clockTime),
		connections: make(map[string]Conn),
		log:         log,
	}, nil
}

func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.seats.ColorOf(playerID); ok {
		return color, nil
	}
	for _, color := range []model.Color{model.White, model.Black} {
		seat := s.seats.Seat(color)
		if seat.ID == "" {
			seat.ID = playerID
			seat.Color = color
			s.log.Info().Str("player", playerID).Str("color", string(color)).Msg("player seated")
			if !s.canSpectate() {
				s.startClock()
			}
			return color, nil
		}
	}
	return "", ErrGameFull
}

func (s *Session) IsPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.seats.ColorOf(playerID)
	return ok
}

func (s *Session) CanSpectate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.canSpectate()
}

func (s *Session) canSpectate() bool {
	return s.seats.White.ID == "" || s.seats.Black.ID == ""
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state()
}

func (s *Session) state() State {
	players := s.seats
	players.White.TimeLeft = s.whiteClock.Tenths()
	players.Black.TimeLeft = s.blackClock.Tenths()
	return State{
		Snapshot: s.game.Snapshot(),
		Players:  players,
	}
}

// Click feeds a pointer click on cell into the game.
func (s *Session) Click(playerID string, cell model.Cell) (State, error) {
	return s.handle(playerID, func(g *model.Game) (bool, error) {
		return g.Click(cell), nil
	})
}

// Select selects the player's piece on cell.
func (s *Session) Select(playerID string, cell model.Cell) (State, error) {
	return s.handle(playerID, func(g *model.Game) (bool, error) {
		g.Select(cell)
		return false, nil
	})
}

// Move selects from and attempts to move to. Unlike a click it fails when the move is not legal.
func (s *Session) Move(playerID string, from, to model.Cell) (State, error) {
	return s.handle(playerID, func(g *model.Game) (bool, error) {
		if !g.Select(from) || !g.AttemptMove(to) {
			return false, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
		}
		return true, nil
	})
}

// handle runs one input event. The resulting state is broadcast even when
// input fails, since a rejected move still changes the selection.
func (s *Session) handle(playerID string, input func(g *model.Game) (bool, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.seats.ColorOf(playerID)
	if !ok {
		return State{}, ErrNotInGame
	}
	if color != s.game.SideToMove() {
		return State{}, ErrNotYourTurn
	}

	moved, err := input(s.game)
	if moved {
		s.switchClocks(color)
	}
	state := s.state()
	s.broadcast(state)
	return state, err
}

// startClock starts the side to move's clock once both seats are taken.
func (s *Session) startClock() {
	if s.game.Phase() == model.PhaseEnded {
		return
	}
	if s.game.SideToMove() == model.White {
		s.whiteClock.Start()
	} else {
		s.blackClock.Start()
	}
}

// switchClocks stops the mover's clock and starts the opponent's, or stops
// both once the game is over.
func (s *Session) switchClocks(mover model.Color) {
	mine, theirs := s.whiteClock, s.blackClock
	if mover == model.Black {
		mine, theirs = theirs, mine
	}
	mine.Stop()
	if s.game.Phase() == model.PhaseEnded {
		theirs.Stop()
		return
	}
	theirs.Start()
}

// RegisterConnection adds conn for a seated player, or for a spectator while
// a seat is free. Conns shared with other writers must serialise their own
// writes; see ws.SyncConn.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, seated := s.seats.ColorOf(playerID)
	if !seated && !s.canSpectate() {
		return ErrNotInGame
	}

	s.connMu.Lock()
	if _, exists := s.connections[playerID]; exists {
		// keep the healthy connection, reject the duplicate
		s.connMu.Unlock()
		conn.Close()
		return nil
	}
	s.connections[playerID] = conn
	s.connMu.Unlock()
	s.log.Debug().Str("player", playerID).Msg("connection registered")

	s.broadcast(s.state())
	return nil
}

// UnregisterConnection removes conn if it is still the player's current connection.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if current, exists := s.connections[playerID]; exists && current == conn {
		delete(s.connections, playerID)
		s.log.Debug().Str("player", playerID).Msg("connection unregistered")
	}
}

// broadcast sends state to every connection. Callers hold s.mu.
func (s *Session) broadcast(state State) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal game state")
		return
	}

	s.connMu.RLock()
	activeConnections := make(map[string]Conn, len(s.connections))
	for playerID, conn := range s.connections {
		activeConnections[playerID] = conn
	}
	s.connMu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Warn().Err(err).Str("player", playerID).Msg("failed to send state")
			s.UnregisterConnection(playerID, conn)
		}
	}
}
