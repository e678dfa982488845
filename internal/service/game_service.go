package service

import (
	"fmt"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (State, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return State{}, err
	}
	return game.State(), nil
}

func (gs *GameService) HandleClick(gameID, playerID, cell string) (State, error) {
	game, c, err := gs.resolve(gameID, cell)
	if err != nil {
		return State{}, err
	}
	return game.Click(playerID, c)
}

func (gs *GameService) HandleSelect(gameID, playerID, cell string) (State, error) {
	game, c, err := gs.resolve(gameID, cell)
	if err != nil {
		return State{}, err
	}
	return game.Select(playerID, c)
}

func (gs *GameService) HandleMove(gameID, playerID, from, to string) (State, error) {
	game, fromCell, err := gs.resolve(gameID, from)
	if err != nil {
		return State{}, err
	}
	toCell, err := model.ParseCell(to)
	if err != nil {
		return State{}, err
	}
	return game.Move(playerID, fromCell, toCell)
}

func (gs *GameService) resolve(gameID, cell string) (*Session, model.Cell, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, model.Cell{}, err
	}
	c, err := model.ParseCell(cell)
	if err != nil {
		return nil, model.Cell{}, err
	}
	return game, c, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
