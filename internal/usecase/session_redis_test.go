package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-pad/internal/config"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pad/internal/input"
	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
	"github.com/rocketscienceinc/tictactoe-pad/internal/repository"
	"github.com/rocketscienceinc/tictactoe-pad/internal/service"
	"github.com/rocketscienceinc/tictactoe-pad/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-pad/testing/suite"
)

func TestSession_ResumeFromRedis(t *testing.T) {
	ctx, st := suite.New(t)

	gameService := service.NewGameService(repository.NewGameRepository(st.Storage, st.KeyPrefix, time.Hour))
	layout := render.NewLayout(entity.DefaultDimension, config.Render{SpriteWidth: 32, SpriteHeight: 32, LineThickness: 2})

	newSession := func() *Session {
		game, err := tictactoe.NewGame(entity.DefaultDimension)
		require.NoError(t, err)

		return NewSession(st.Logger, game, input.NewKeymap(entity.DefaultDimension), layout, gameService)
	}

	// Given: a first session that played two moves
	first := newSession()
	pressKeys(t, first, "7", "5")

	// When: a second session starts and resumes
	second := newSession()
	resumed, err := second.Resume(ctx)

	// Then: it continues the same game with X to move
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.ElementsMatch(t, []string{
		st.KeyPrefix + ":game:" + first.Frame().Game.ID,
		st.KeyPrefix + ":game:latest",
	}, st.Keys(ctx))
	assert.Equal(t, first.Frame(), second.Frame())
	assert.Equal(t, entity.SignX, second.Frame().Game.Turn)

	// When: the second session finishes the game
	pressKeys(t, second, "8", "4", "9")

	// Then: a third session has nothing to resume
	third := newSession()
	resumed, err = third.Resume(ctx)
	require.NoError(t, err)
	assert.False(t, resumed)
}
