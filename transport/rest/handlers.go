package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	FrameHandler(w http.ResponseWriter, _ *http.Request)
	BoardHandler(w http.ResponseWriter, _ *http.Request)
	SavedGameHandler(w http.ResponseWriter, r *http.Request)
}

type frameSource interface {
	Frame() render.Frame
}

type gameService interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type handlers struct {
	logger zerolog.Logger

	frames      frameSource
	gameService gameService
	renderer    render.TextRenderer
}

// NewHandlers - read-only views of the running game. gameService serves
// stored snapshots and may be nil; hints labels empty cells in the text
// board and may be nil too.
func NewHandlers(logger zerolog.Logger, frames frameSource, gameService gameService, hints func(entity.Cell) string) Handlers {
	return &handlers{
		logger:      logger.With().Str("component", "rest").Logger(),
		frames:      frames,
		gameService: gameService,
		renderer:    render.TextRenderer{Hints: hints},
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// FrameHandler - the current frame as JSON.
func (that *handlers) FrameHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, that.frames.Frame())
}

// SavedGameHandler - a stored snapshot by id.
func (that *handlers) SavedGameHandler(w http.ResponseWriter, r *http.Request) {
	if that.gameService == nil {
		http.Error(w, "Game storage is disabled", http.StatusNotFound)
		return
	}

	id := mux.Vars(r)["gameID"]

	game, err := that.gameService.GetGameByID(r.Context(), id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error().Err(err).Str("game", id).Msg("failed to get game")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, game)
}

// BoardHandler - the current frame drawn as text.
func (that *handlers) BoardHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := that.renderer.Render(w, that.frames.Frame()); err != nil {
		that.logger.Debug().Err(err).Msg("failed to write board")
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		that.logger.Error().Err(err).Msg("failed to marshal response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		that.logger.Debug().Err(err).Msg("failed to write response")
	}
}
