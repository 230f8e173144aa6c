package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGameRepo) GetLatest(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return that.Called(ctx, id).Error(0)
}

func TestGameService_SaveGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves a game with an id", func(t *testing.T) {
		// Given: a repository that accepts the game
		repo := &mockGameRepo{}
		game := &entity.Game{ID: "g1", Status: entity.StatusOngoing}
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: the game is saved
		err := NewGameService(repo).SaveGame(ctx, game)

		// Then: the repository was called
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Game without id is rejected", func(t *testing.T) {
		repo := &mockGameRepo{}

		err := NewGameService(repo).SaveGame(ctx, &entity.Game{})

		require.ErrorIs(t, err, apperror.ErrInvalidSnapshot)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Repository error is wrapped", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		err := NewGameService(repo).SaveGame(ctx, &entity.Game{ID: "g1"})

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameService_GetUnfinishedGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns an ongoing game", func(t *testing.T) {
		repo := &mockGameRepo{}
		game := &entity.Game{ID: "g1", Status: entity.StatusOngoing}
		repo.On("GetLatest", mock.Anything).Return(game, nil).Once()

		got, err := NewGameService(repo).GetUnfinishedGame(ctx)

		require.NoError(t, err)
		assert.Equal(t, game, got)
	})

	t.Run("Finished game is not resumable", func(t *testing.T) {
		for _, status := range []string{entity.StatusWon, entity.StatusDrawn} {
			repo := &mockGameRepo{}
			repo.On("GetLatest", mock.Anything).Return(&entity.Game{ID: "g1", Status: status}, nil).Once()

			got, err := NewGameService(repo).GetUnfinishedGame(ctx)

			require.ErrorIs(t, err, apperror.ErrGameNotFound, "status %s", status)
			assert.Nil(t, got)
		}
	})

	t.Run("Nothing stored", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetLatest", mock.Anything).Return(&entity.Game{}, apperror.ErrGameNotFound).Once()

		_, err := NewGameService(repo).GetUnfinishedGame(ctx)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameService_GetGameByID(t *testing.T) {
	repo := &mockGameRepo{}
	repo.On("GetByID", mock.Anything, "missing").Return(&entity.Game{}, apperror.ErrGameNotFound).Once()

	game, err := NewGameService(repo).GetGameByID(context.Background(), "missing")

	require.ErrorIs(t, err, apperror.ErrGameNotFound)
	assert.Nil(t, game)
}

func TestGameService_DeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing game is ignored", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("DeleteByID", mock.Anything, "g1").Return(apperror.ErrGameNotFound).Once()

		require.NoError(t, NewGameService(repo).DeleteGame(ctx, "g1"))
	})

	t.Run("Storage failure is returned", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("DeleteByID", mock.Anything, "g1").Return(errRedisDown).Once()

		require.ErrorIs(t, NewGameService(repo).DeleteGame(ctx, "g1"), errRedisDown)
	})
}
