package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-pad/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-pad/internal/entity"
	"github.com/rocketscienceinc/tictactoe-pad/internal/input"
	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
)

type session interface {
	HandleKey(ctx context.Context, key string) (input.Command, error)
	Frame() render.Frame
}

// Loop feeds keys read line by line into a session and draws the result.
type Loop struct {
	logger   zerolog.Logger
	session  session
	renderer render.TextRenderer
	in       io.Reader
	out      io.Writer
}

func NewLoop(logger zerolog.Logger, session session, hints func(entity.Cell) string, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		logger:   logger.With().Str("component", "console").Logger(),
		session:  session,
		renderer: render.TextRenderer{Hints: hints},
		in:       in,
		out:      out,
	}
}

// Run - blocks until quit, end of input or ctx is done.
func (that *Loop) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	// readErr gets exactly one value before lines is closed.
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}

		readErr <- scanner.Err()
	}()

	if err := that.draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil && ctx.Err() == nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				that.logger.Info().Msg("input closed")
				return nil
			}

			quit, err := that.handle(ctx, line)
			if err != nil {
				return err
			}

			if quit {
				that.logger.Info().Msg("quit requested")
				return nil
			}
		}
	}
}

func (that *Loop) handle(ctx context.Context, line string) (bool, error) {
	command, err := that.session.HandleKey(ctx, line)

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrUnknownKey), errors.Is(err, apperror.ErrOutOfBounds):
		return false, that.notice("Unknown key %q.", line)
	case errors.Is(err, apperror.ErrCellOccupied):
		return false, that.notice("That cell is taken.")
	case errors.Is(err, apperror.ErrGameOver):
		return false, that.notice("The game is over, press r to play again.")
	default:
		return false, fmt.Errorf("failed to handle key %q: %w", line, err)
	}

	if command.Kind == input.KindQuit {
		return true, nil
	}

	return false, that.draw()
}

func (that *Loop) draw() error {
	if err := that.renderer.Render(that.out, that.session.Frame()); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}

	return nil
}

func (that *Loop) notice(format string, args ...any) error {
	if _, err := fmt.Fprintf(that.out, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write notice: %w", err)
	}

	return nil
}
