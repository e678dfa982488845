package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessmaster-backend/internal/service"
	"github.com/benbeisheim/chessmaster-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	log := wsc.log.With().Str("game", gameID).Str("player", playerID).Logger()

	// broadcasts from other players' events share this socket with sendError
	conn := ws.NewSyncConn(c)
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read error")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.sendError(conn, err)
		}
	}
}

// handleMessage routes one client message. Successful input is broadcast to
// every connection by the session.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick, ws.MessageTypeSelect:
		var payload ws.CellPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		var err error
		if msg.Type == ws.MessageTypeClick {
			_, err = wsc.gameService.HandleClick(gameID, playerID, payload.Cell)
		} else {
			_, err = wsc.gameService.HandleSelect(gameID, playerID, payload.Cell)
		}
		return err

	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, payload.From, payload.To)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits on a matchmaking socket until the player is paired.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		wsc.log.Debug().Err(err).Str("player", playerID).Msg("already queued")
	}

	// a read error means the client left before being matched
	left := make(chan struct{})
	go func() {
		defer close(left)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if ok {
			if err := c.WriteMessage(websocket.TextMessage, []byte(event)); err != nil {
				wsc.log.Warn().Err(err).Str("player", playerID).Msg("failed to send match event")
			}
		}
	case <-left:
		wsc.gameService.UnregisterMatchmakingChannel(playerID)
	}
}

func (wsc *WebSocketController) sendError(c *ws.SyncConn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := c.WriteJSON(msg); werr != nil {
		wsc.log.Debug().Err(werr).Msg("failed to send error")
	}
}
