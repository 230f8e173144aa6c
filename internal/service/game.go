package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
)

type GameService interface {
	SaveGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetUnfinishedGame(ctx context.Context) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error

	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetLatest(ctx context.Context) (*entity.Game, error)

	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

func (that *gameService) SaveGame(ctx context.Context, game *entity.Game) error {
	if game.ID == "" {
		return fmt.Errorf("%w: game without id", apperror.ErrInvalidSnapshot)
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

// GetUnfinishedGame - the most recently saved game, if it can still be played.
func (that *gameService) GetUnfinishedGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve latest game from storage: %w", err)
	}

	if game.IsFinished() {
		return nil, fmt.Errorf("%w: latest game %s is %s", apperror.ErrGameNotFound, game.ID, game.Status)
	}

	return game, nil
}

// DeleteGame - removes a snapshot; a missing one is not an error.
func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	err := that.gameRepo.DeleteByID(ctx, gameID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
