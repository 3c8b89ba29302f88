package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/oracle"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
)

const spinnerCharSet = 14

var errQuit = errors.New("quit")

var playHelp = heredoc.Doc(`
	1-4      drop a tile into that column
	retry    ask the oracle again after a failed request
	restart  throw the game away and start over
	quit     leave
`)

// ninedt play
func Play(bootstrap Bootstrap) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Plays a game in the terminal",
		Long: heredoc.Doc(`play runs a single game against the configured oracle
			in the terminal. Logs go to stderr.`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			conf, logger := bootstrap(path, os.Stderr)

			client, err := oracle.New(logger, conf.Oracle.URL, conf.Oracle.Timeout)
			if err != nil {
				return fmt.Errorf("failed to create oracle client: %w", err)
			}

			session := &terminal{
				manager: usecase.NewGameManager(logger, client, "terminal"),
				in:      bufio.NewScanner(cmd.InOrStdin()),
				out:     cmd.OutOrStdout(),
				spinner: spinner.New(spinner.CharSets[spinnerCharSet], 100*time.Millisecond),
			}

			return session.run(cmd.Context())
		},
	}
}

type terminal struct {
	manager *usecase.GameManager
	in      *bufio.Scanner
	out     io.Writer
	spinner *spinner.Spinner
}

func (that *terminal) run(ctx context.Context) error {
	fmt.Fprint(that.out, playHelp)

	for {
		if err := that.start(ctx); err != nil {
			return ignoreQuit(err)
		}

		if err := that.loop(ctx); err != nil {
			return ignoreQuit(err)
		}
	}
}

// start asks who moves first until the game is under way.
func (that *terminal) start(ctx context.Context) error {
	for {
		line, err := that.prompt("Who moves first? [human/oracle] ")
		if err != nil {
			return err
		}

		first, err := entity.ParseSide(line)
		if err != nil {
			fmt.Fprintln(that.out, err)
			continue
		}

		game, err := that.waitFor(func() (entity.Game, error) {
			return that.manager.Start(ctx, first)
		})
		that.show(game, err)

		return nil
	}
}

// loop plays one game. It returns nil after a restart.
func (that *terminal) loop(ctx context.Context) error {
	for {
		line, err := that.prompt("> ")
		if err != nil {
			return err
		}

		command, column, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(that.out, err)
			continue
		}

		switch command {
		case CommandQuit:
			return errQuit
		case CommandRestart:
			that.show(that.manager.Restart(), nil)
			return nil
		case CommandRetry:
			that.show(that.waitFor(func() (entity.Game, error) {
				return that.manager.RetryOracle(ctx)
			}))
		case CommandColumn:
			that.show(that.waitFor(func() (entity.Game, error) {
				return that.manager.PlayColumn(ctx, column)
			}))
		}
	}
}

// waitFor spins while the oracle is thinking.
func (that *terminal) waitFor(call func() (entity.Game, error)) (entity.Game, error) {
	that.spinner.Suffix = " waiting for the oracle"
	that.spinner.Start()
	defer that.spinner.Stop()

	return call()
}

func (that *terminal) show(game entity.Game, err error) {
	fmt.Fprintln(that.out)
	RenderBoard(that.out, game)
	fmt.Fprintln(that.out, game.StatusText())

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrOracleTransport), errors.Is(err, apperror.ErrOracleProtocol):
		fmt.Fprintf(that.out, "%v\ntype retry to ask again or restart to start over\n", err)
	default:
		fmt.Fprintln(that.out, err)
	}

	if game.IsFinished() {
		fmt.Fprintln(that.out, "type restart for a new game")
	}
}

func (that *terminal) prompt(text string) (string, error) {
	fmt.Fprint(that.out, text)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errQuit
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

type Command int

const (
	CommandColumn Command = iota
	CommandRetry
	CommandRestart
	CommandQuit
)

var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand reads one input line. Columns are typed 1-based and returned
// 0-based.
func ParseCommand(line string) (Command, int, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "r", "retry":
		return CommandRetry, 0, nil
	case "n", "restart":
		return CommandRestart, 0, nil
	case "q", "quit", "exit":
		return CommandQuit, 0, nil
	}

	column, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}

	if column < 1 || column > entity.Columns {
		return 0, 0, fmt.Errorf("%w: column must be between 1 and %d", apperror.ErrInvalidColumn, entity.Columns)
	}

	return CommandColumn, column - 1, nil
}
