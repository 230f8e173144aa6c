package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pad/internal/input"
	"github.com/rocketscienceinc/tictactoe-pad/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
	"github.com/rocketscienceinc/tictactoe-pad/internal/tictactoe"
)

type gameService interface {
	SaveGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
	GetUnfinishedGame(ctx context.Context) (*entity.Game, error)
}

// FrameListener is called with the current frame when it subscribes and
// after every accepted change. It runs while the session commits a change,
// so it must not block or call back into the session.
type FrameListener func(frame render.Frame)

// Session owns the one game of the process. Mutations are serialised and
// readers only ever get frames built from snapshots.
type Session struct {
	logger zerolog.Logger

	// commitMu orders whole mutations: state change, save and publish.
	// mu only guards the game so Frame is not held up by storage.
	commitMu sync.Mutex
	mu       sync.Mutex

	id     string
	game   *tictactoe.Game
	keymap *input.Keymap
	layout render.Layout

	gameService gameService

	listenersMu  sync.Mutex
	listeners    map[int]FrameListener
	nextListener int
}

// NewSession - gameService may be nil, in which case nothing is persisted.
func NewSession(logger zerolog.Logger, game *tictactoe.Game, keymap *input.Keymap, layout render.Layout, gameService gameService) *Session {
	return &Session{
		logger:      logger.With().Str("component", "session").Logger(),
		id:          pkg.GenerateGameID(),
		game:        game,
		keymap:      keymap,
		layout:      layout,
		gameService: gameService,
		listeners:   make(map[int]FrameListener),
	}
}

// HandleKey - parses a raw key and applies it. Quit is returned to the
// caller untouched; the session has nothing to do for it.
func (that *Session) HandleKey(ctx context.Context, key string) (input.Command, error) {
	command, err := that.keymap.Parse(key)
	if err != nil {
		that.logger.Debug().Str("key", key).Err(err).Msg("key ignored")
		return input.Command{}, fmt.Errorf("failed to parse key: %w", err)
	}

	switch command.Kind {
	case input.KindMove:
		if _, err = that.Move(ctx, command.Cell); err != nil {
			return command, err
		}
	case input.KindReset:
		that.Reset(ctx)
	case input.KindQuit:
	}

	return command, nil
}

// Move - plays the turn holder's sign at cell.
func (that *Session) Move(ctx context.Context, cell entity.Cell) (tictactoe.MoveResult, error) {
	that.commitMu.Lock()
	defer that.commitMu.Unlock()

	that.mu.Lock()

	result, err := that.game.AttemptMove(cell.Col, cell.Row)
	if err != nil {
		that.mu.Unlock()
		that.logger.Debug().Stringer("cell", cell).Err(err).Msg("move rejected")

		return result, fmt.Errorf("failed to make move: %w", err)
	}

	snapshot := that.game.Snapshot(that.id)
	that.mu.Unlock()

	log := that.logger.Info().Str("game", snapshot.ID).Stringer("sign", result.Sign).Stringer("cell", cell)
	switch result.Result {
	case tictactoe.ResultWon:
		log.Stringer("line", result.Outcome.Line).Msg("game won")
	case tictactoe.ResultDrawn:
		log.Msg("game drawn")
	default:
		log.Msg("move accepted")
	}

	that.persist(ctx, snapshot)
	that.publish(snapshot)

	return result, nil
}

// Reset - starts a new game and drops the stored snapshot of the old one.
func (that *Session) Reset(ctx context.Context) {
	that.commitMu.Lock()
	defer that.commitMu.Unlock()

	that.mu.Lock()

	previousID := that.id
	that.game.Reset()
	that.id = pkg.GenerateGameID()
	snapshot := that.game.Snapshot(that.id)

	that.mu.Unlock()

	that.logger.Info().Str("game", snapshot.ID).Str("previous", previousID).Msg("game reset")

	if that.gameService != nil {
		if err := that.gameService.DeleteGame(ctx, previousID); err != nil {
			that.logger.Error().Err(err).Str("game", previousID).Msg("failed to delete game")
		}
	}

	that.persist(ctx, snapshot)
	that.publish(snapshot)
}

// Resume - replaces the current game with the last unfinished saved one.
// It reports false when there is nothing to resume.
func (that *Session) Resume(ctx context.Context) (bool, error) {
	if that.gameService == nil {
		return false, nil
	}

	stored, err := that.gameService.GetUnfinishedGame(ctx)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to load saved game: %w", err)
	}

	game, err := tictactoe.Restore(stored)
	if err != nil {
		return false, fmt.Errorf("failed to restore game %s: %w", stored.ID, err)
	}

	if game.Dim() != that.keymap.Dim() {
		return false, fmt.Errorf("%w: saved game is %dx%d", apperror.ErrInvalidSnapshot, game.Dim(), game.Dim())
	}

	that.commitMu.Lock()
	defer that.commitMu.Unlock()

	that.mu.Lock()
	that.id = stored.ID
	that.game = game
	snapshot := game.Snapshot(stored.ID)
	that.mu.Unlock()

	that.logger.Info().Str("game", stored.ID).Int("moves", stored.Moves).Msg("game resumed")
	that.publish(snapshot)

	return true, nil
}

// Frame - the current state for renderers.
func (that *Session) Frame() render.Frame {
	that.mu.Lock()
	snapshot := that.game.Snapshot(that.id)
	that.mu.Unlock()

	return render.NewFrame(snapshot, that.layout)
}

// Subscribe - hands fn the current frame, then every later one in commit
// order. The returned function removes it.
func (that *Session) Subscribe(fn FrameListener) func() {
	that.commitMu.Lock()
	defer that.commitMu.Unlock()

	fn(that.Frame())

	that.listenersMu.Lock()
	id := that.nextListener
	that.nextListener++
	that.listeners[id] = fn
	that.listenersMu.Unlock()

	return func() {
		that.listenersMu.Lock()
		defer that.listenersMu.Unlock()

		delete(that.listeners, id)
	}
}

func (that *Session) persist(ctx context.Context, snapshot *entity.Game) {
	if that.gameService == nil {
		return
	}

	if err := that.gameService.SaveGame(ctx, snapshot); err != nil {
		that.logger.Error().Err(err).Str("game", snapshot.ID).Msg("failed to save game")
	}
}

func (that *Session) publish(snapshot *entity.Game) {
	frame := render.NewFrame(snapshot, that.layout)

	that.listenersMu.Lock()
	listeners := make([]FrameListener, 0, len(that.listeners))
	for _, fn := range that.listeners {
		listeners = append(listeners, fn)
	}
	that.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(frame)
	}
}
