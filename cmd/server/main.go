package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/chessmaster-backend/internal/config"
	"github.com/benbeisheim/chessmaster-backend/internal/controller"
	"github.com/benbeisheim/chessmaster-backend/internal/loader"
	"github.com/benbeisheim/chessmaster-backend/internal/middleware"
	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := cfg.Logger()

	startingPosition := loader.Default()
	if cfg.BoardFile != "" {
		if startingPosition, err = loader.Load(cfg.BoardFile); err != nil {
			log.Fatal().Err(err).Msg("load board")
		}
	}
	// fail at startup rather than on the first game
	if _, err := model.NewGame(startingPosition); err != nil {
		log.Fatal().Err(err).Msg("invalid starting position")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameManager := service.NewGameManager(service.Settings{
		StartingPosition: startingPosition,
		ClockTime:        cfg.ClockTime,
		MatchInterval:    cfg.MatchInterval,
	}, log)
	go gameManager.ProcessMatchmaking(ctx)

	app := newApp(cfg, gameManager, log)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("listen", cfg.Listen).Msg("server starting")
	if err := app.Listen(cfg.Listen); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}

func newApp(cfg config.Config, gameManager *service.GameManager, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		log.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("request")
		return c.Next()
	})

	gameService := service.NewGameService(gameManager)
	gameController := controller.NewGameController(gameService, log)
	wsController := controller.NewWebSocketController(gameService, log)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.AllowedOrigins,
	}
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/click", gameController.Click)

	return app
}
