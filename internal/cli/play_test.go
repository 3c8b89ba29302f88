package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
	mockedUseCase "github.com/rocketscienceinc/ninedt-backend/mocks/usecase"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		command Command
		column  int
	}{
		{line: "1", command: CommandColumn, column: 0},
		{line: " 4 ", command: CommandColumn, column: 3},
		{line: "retry", command: CommandRetry},
		{line: "R", command: CommandRetry},
		{line: "restart", command: CommandRestart},
		{line: "q", command: CommandQuit},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			command, column, err := ParseCommand(tt.line)

			require.NoError(t, err)
			assert.Equal(t, tt.command, command)
			assert.Equal(t, tt.column, column)
		})
	}

	t.Run("Column out of range", func(t *testing.T) {
		_, _, err := ParseCommand("5")

		require.ErrorIs(t, err, apperror.ErrInvalidColumn)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := ParseCommand("left")

		require.ErrorIs(t, err, ErrUnknownCommand)
	})
}

func TestRenderBoard(t *testing.T) {
	// Given: the human opened in column 1 and the oracle answered in column 2
	board, err := entity.BuildBoard(entity.MoveHistory{0, 1})
	require.NoError(t, err)

	game := entity.Game{Board: board, HumanMark: entity.Player1}

	// When
	var out bytes.Buffer
	RenderBoard(&out, game)

	// Then: the tiles sit on the bottom row
	expected := strings.Join([]string{
		"1 2 3 4",
		". . . .",
		". . . .",
		". . . .",
		"X O . .",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())
}

func TestTerminal_Run(t *testing.T) {
	t.Run("Plays a move and quits", func(t *testing.T) {
		// Given: an oracle that answers in column 4
		mockOracle := mockedUseCase.NewMockoracleDep(t)
		mockOracle.EXPECT().
			RequestMove(mock.Anything, entity.MoveHistory{0}).
			Return(entity.MoveHistory{0, 3}, nil).
			Once()

		var out bytes.Buffer
		session := newTestTerminal(mockOracle, "human\n1\nquit\n", &out)

		// When
		err := session.run(context.Background())

		// Then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "X . . O")
		assert.Equal(t, entity.MoveHistory{0, 3}, session.manager.Snapshot().History)
	})

	t.Run("Reports input errors and keeps going", func(t *testing.T) {
		mockOracle := mockedUseCase.NewMockoracleDep(t)

		var out bytes.Buffer
		session := newTestTerminal(mockOracle, "nobody\nhuman\n9\nrestart\n", &out)

		// When: the input ends after a restart
		err := session.run(context.Background())

		// Then
		require.NoError(t, err)
		assert.Contains(t, out.String(), entity.ErrUnknownSide.Error())
		assert.Contains(t, out.String(), apperror.ErrInvalidColumn.Error())
		assert.Equal(t, entity.StatusNotStarted, session.manager.Snapshot().Status)
	})
}

func newTestTerminal(oracle *mockedUseCase.MockoracleDep, input string, out io.Writer) *terminal {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return &terminal{
		manager: usecase.NewGameManager(logger, oracle, "terminal"),
		in:      bufio.NewScanner(strings.NewReader(input)),
		out:     out,
		spinner: spinner.New(spinner.CharSets[spinnerCharSet], 100*time.Millisecond, spinner.WithWriter(io.Discard)),
	}
}
