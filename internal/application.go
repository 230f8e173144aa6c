package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-pad/internal/config"
	"github.com/rocketscienceinc/tictactoe-pad/internal/console"
	"github.com/rocketscienceinc/tictactoe-pad/internal/input"
	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
	"github.com/rocketscienceinc/tictactoe-pad/internal/repository"
	"github.com/rocketscienceinc/tictactoe-pad/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-pad/internal/service"
	"github.com/rocketscienceinc/tictactoe-pad/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-pad/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-pad/transport/rest"
	"github.com/rocketscienceinc/tictactoe-pad/transport/websocket"
)

const shutdownTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger zerolog.Logger, conf *config.Config) error {
	log := logger.With().Str("component", "app").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info().Stringer("signal", sig).Msg("Received signal, shutting down")
		cancel()
	}()

	var gameService service.GameService

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error().Err(err).Msg("could not close redis storage")
			}
		}()

		gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Redis.KeyPrefix, conf.Redis.TTL)
		gameService = service.NewGameService(gameRepo)
	}

	game, err := tictactoe.NewGame(conf.Board.Dimension)
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	keymap := input.NewKeymap(conf.Board.Dimension)
	layout := render.NewLayout(conf.Board.Dimension, conf.Render)
	session := usecase.NewSession(logger, game, keymap, layout, gameService)

	if resumed, resumeErr := session.Resume(ctx); resumeErr != nil {
		log.Warn().Err(resumeErr).Msg("saved game could not be resumed, starting a new one")
	} else if resumed {
		log.Info().Msg("saved game resumed")
	}

	feed := websocket.New(logger, session)
	router := rest.NewRouter(rest.NewHandlers(logger, session, gameService, keymap.KeyFor))
	router.Handle("/ws", feed)
	server := rest.NewServer(conf.HTTPPort, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", conf.HTTPPort).Msg("Starting HTTP server")
		if httpErr := server.ListenAndServe(); httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			httpErrCh <- httpErr
		}
	}()

	// run console
	consoleDone := make(chan error, 1)
	go func() {
		consoleDone <- console.NewLoop(logger, session, keymap.KeyFor, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err = <-httpErrCh:
		err = fmt.Errorf("HTTP server error: %w", err)
	case err = <-consoleDone:
		if err != nil {
			err = fmt.Errorf("console error: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Application context canceled, shutting down")
	}

	feed.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("HTTP server shutdown failed")
	}

	return err
}
