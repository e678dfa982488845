package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/ws"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Settings struct {
	// StartingPosition is copied into every new game.
	StartingPosition []model.Piece
	ClockTime        time.Duration
	MatchInterval    time.Duration
}

type GameManager struct {
	games            map[string]*Session
	queue            *model.Queue
	matchingChannels map[string]chan string
	settings         Settings
	mu               sync.RWMutex
	log              zerolog.Logger
}

func NewGameManager(settings Settings, log zerolog.Logger) *GameManager {
	return &GameManager{
		games:            make(map[string]*Session),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		settings:         settings,
		log:              log,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	_, err := gm.createGame(gameID)
	return err
}

func (gm *GameManager) createGame(gameID string) (*Session, error) {
	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}
	session, err := NewSession(gameID, gm.settings.StartingPosition, gm.settings.ClockTime, gm.log)
	if err != nil {
		return nil, err
	}
	gm.games[gameID] = session
	gm.log.Info().Str("game", gameID).Msg("game created")
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	gm.log.Debug().Str("player", playerID).Int("queued", gm.queue.Size()).Msg("joined matchmaking")
	return nil
}

// RegisterMatchmakingChannel sets the channel a queued player's match event is
// delivered on. The manager closes it after delivery.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets the player's channel and takes them out of the queue.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matchingChannels, playerID)
	gm.queue.RemovePlayer(playerID)
}

// ProcessMatchmaking pairs queued players every match interval until ctx is done.
func (gm *GameManager) ProcessMatchmaking(ctx context.Context) {
	ticker := time.NewTicker(gm.settings.MatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.MatchNext() {
			}
		}
	}
}

// MatchNext pairs the two longest-waiting players into a new game. It reports
// whether a pair was made.
func (gm *GameManager) MatchNext() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game, err := gm.createGame(gameID)
	if err != nil {
		gm.log.Error().Err(err).Msg("matchmaking: create game")
		return false
	}
	for _, player := range []model.Player{player1, player2} {
		color, err := game.AddPlayer(player.ID)
		if err != nil {
			gm.log.Error().Err(err).Str("player", player.ID).Msg("matchmaking: seat player")
			continue
		}
		gm.notifyMatch(player.ID, model.MatchFoundEvent{GameID: gameID, Color: color})
	}
	return true
}

// notifyMatch sends the event and closes the player's channel. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.log.Warn().Str("player", playerID).Msg("matched player has no channel")
		return
	}
	delete(gm.matchingChannels, playerID)
	defer close(ch)

	msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
	if err != nil {
		gm.log.Error().Err(err).Msg("marshal match event")
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		gm.log.Error().Err(err).Msg("marshal match event")
		return
	}
	select {
	case ch <- string(payload):
		gm.log.Info().Str("player", playerID).Str("game", event.GameID).Msg("match found")
	default:
		gm.log.Warn().Str("player", playerID).Msg("failed to send match event")
	}
}
