package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/ninedt"
	"github.com/rocketscienceinc/ninedt-backend/internal/oracle"
)

type oracleDep interface {
	RequestMove(ctx context.Context, history entity.MoveHistory) (entity.MoveHistory, error)
}

// GameManager drives one game between a human and the oracle. It is the
// only writer of the game state; readers get copies.
type GameManager struct {
	logger *slog.Logger
	oracle oracleDep

	mu         sync.Mutex
	game       *entity.Game
	generation uint64
	watchers   map[int]chan entity.Game
	nextWatch  int
}

func NewGameManager(logger *slog.Logger, oracle oracleDep, gameID string) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager", "gameID", gameID),
		oracle:   oracle,
		game:     entity.NewGame(gameID),
		watchers: make(map[int]chan entity.Game),
	}
}

// Snapshot returns a copy of the current game.
func (that *GameManager) Snapshot() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Clone()
}

// Start begins the game. When the oracle moves first the call returns only
// after its reply has been applied or has failed.
func (that *GameManager) Start(ctx context.Context, first entity.Side) (entity.Game, error) {
	that.mu.Lock()

	if !that.game.IsWaiting() {
		snapshot := that.game.Clone()
		that.mu.Unlock()
		return snapshot, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameAlreadyStarted)
	}

	that.game.HumanMark = entity.SideHuman.Mark(first)

	if first == entity.SideHuman {
		that.game.Status = entity.StatusHumanTurn
		that.publish()
		snapshot := that.game.Clone()
		that.mu.Unlock()

		that.logger.Info("game started", "first", first)
		return snapshot, nil
	}

	generation, submitted := that.beginOracleTurn()
	that.mu.Unlock()

	that.logger.Info("game started", "first", first)

	return that.oracleTurn(ctx, generation, submitted)
}

// PlayColumn applies a human move and, if the game goes on, waits for the
// oracle's answer. Rejected moves leave the game untouched.
func (that *GameManager) PlayColumn(ctx context.Context, column int) (entity.Game, error) {
	log := that.logger.With("method", "PlayColumn", "column", column)

	that.mu.Lock()

	if err := that.validateHumanMove(column); err != nil {
		snapshot := that.game.Clone()
		that.mu.Unlock()
		return snapshot, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	history := that.game.History.Append(column)

	board, err := entity.BuildBoard(history)
	if err != nil {
		// The gate above makes this unreachable unless history and board
		// went out of sync; the game cannot continue from here.
		that.reset()
		snapshot := that.game.Clone()
		that.mu.Unlock()

		log.Error("board rebuild failed, game reset", "error", err)
		return snapshot, fmt.Errorf("failed to rebuild board: %w", err)
	}

	evaluation := that.commit(history, board, entity.SideHuman)
	if evaluation.IsTerminal() {
		snapshot := that.game.Clone()
		that.mu.Unlock()

		log.Info("game finished", "status", snapshot.Status)
		return snapshot, nil
	}

	// commit already moved the game to the oracle's turn.
	generation, submitted := that.generation, that.game.History.Clone()
	that.mu.Unlock()

	return that.oracleTurn(ctx, generation, submitted)
}

// RetryOracle asks the oracle again after a failed request.
func (that *GameManager) RetryOracle(ctx context.Context) (entity.Game, error) {
	that.mu.Lock()

	if that.game.Status != entity.StatusOracleFailed {
		snapshot := that.game.Clone()
		that.mu.Unlock()
		return snapshot, apperror.ErrNotRetryable
	}

	generation, submitted := that.beginOracleTurn()
	that.mu.Unlock()

	that.logger.Info("retrying oracle request", "moves", oracle.EncodeMoves(submitted))

	return that.oracleTurn(ctx, generation, submitted)
}

// Restart throws the current game away, including any oracle reply still
// in flight. It is valid in every state.
func (that *GameManager) Restart() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.reset()
	that.logger.Info("game restarted")

	return that.game.Clone()
}

// Watch streams every committed snapshot. Only the latest unread snapshot
// is kept for a slow reader. The returned func stops the stream.
func (that *GameManager) Watch() (<-chan entity.Game, func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextWatch
	that.nextWatch++

	ch := make(chan entity.Game, 1)
	ch <- that.game.Clone()
	that.watchers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			that.mu.Lock()
			defer that.mu.Unlock()

			delete(that.watchers, id)
			close(ch)
		})
	}
}

// oracleTurn runs without the lock held; the result is only applied if no
// restart happened meanwhile.
func (that *GameManager) oracleTurn(ctx context.Context, generation uint64, submitted entity.MoveHistory) (entity.Game, error) {
	log := that.logger.With("method", "oracleTurn", "moves", oracle.EncodeMoves(submitted))

	reply, err := that.oracle.RequestMove(ctx, submitted)
	if err == nil {
		err = oracle.ValidateReply(submitted, reply)
	}

	var board entity.Board
	if err == nil {
		board, err = entity.BuildBoard(reply)
		if err != nil {
			err = fmt.Errorf("%w: %w", apperror.ErrOracleProtocol, err)
		}
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if generation != that.generation {
		log.Info("dropping oracle reply for a restarted game")
		return that.game.Clone(), apperror.ErrOracleReplyDiscarded
	}

	if err != nil {
		if !errors.Is(err, apperror.ErrOracleTransport) && !errors.Is(err, apperror.ErrOracleProtocol) {
			err = fmt.Errorf("%w: %w", apperror.ErrOracleTransport, err)
		}

		that.game.Status = entity.StatusOracleFailed
		that.game.LastError = err.Error()
		that.publish()

		log.Error("oracle move failed", "error", err)
		return that.game.Clone(), err
	}

	that.commit(reply, board, entity.SideOracle)
	log.Debug("oracle move applied", "reply", oracle.EncodeMoves(reply), "status", that.game.Status)

	return that.game.Clone(), nil
}

// validateHumanMove must be called with the lock held.
func (that *GameManager) validateHumanMove(column int) error {
	if err := that.game.ConfirmHumanTurn(); err != nil {
		return err
	}

	if column < 0 || column >= entity.Columns {
		return fmt.Errorf("%w: column %d", apperror.ErrInvalidColumn, column)
	}

	if that.game.FullColumns[column] {
		return fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
	}

	return nil
}

// commit stores a rebuilt board together with its evaluation and moves the
// game to the next status in one step. Must be called with the lock held.
func (that *GameManager) commit(history entity.MoveHistory, board entity.Board, mover entity.Side) ninedt.Evaluation {
	evaluation := ninedt.Evaluate(board)

	that.game.History = history
	that.game.Board = board
	that.game.FullColumns = evaluation.FullColumns
	that.game.LastError = ""
	that.game.Revision++

	switch {
	case evaluation.Outcome == ninedt.OutcomeDraw:
		that.game.Status = entity.StatusDraw
	case evaluation.Outcome == ninedt.OutcomeWin && mover == entity.SideHuman:
		that.game.Status = entity.StatusHumanWon
	case evaluation.Outcome == ninedt.OutcomeWin:
		that.game.Status = entity.StatusOracleWon
	case mover == entity.SideHuman:
		that.game.Status = entity.StatusOracleTurn
	default:
		that.game.Status = entity.StatusHumanTurn
	}

	that.publish()

	return evaluation
}

// beginOracleTurn must be called with the lock held.
func (that *GameManager) beginOracleTurn() (uint64, entity.MoveHistory) {
	that.game.Status = entity.StatusOracleTurn
	that.game.LastError = ""
	that.publish()

	return that.generation, that.game.History.Clone()
}

// reset must be called with the lock held.
func (that *GameManager) reset() {
	that.generation++
	that.game = entity.NewGame(that.game.ID)
	that.publish()
}

// publish must be called with the lock held. It never blocks.
func (that *GameManager) publish() {
	for _, ch := range that.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- that.game.Clone()
	}
}
