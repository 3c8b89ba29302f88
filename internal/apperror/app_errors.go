package apperror

import "errors"

var (
	ErrInvalidMove        = errors.New("invalid move")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrGameAlreadyStarted = errors.New("game is already started")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrInvalidColumn      = errors.New("invalid column index")
	ErrColumnFull         = errors.New("column is full")
	ErrNotRetryable       = errors.New("no failed oracle request to retry")
	ErrGameNotFound       = errors.New("game not found")
	ErrTooManyGames       = errors.New("too many active games")

	ErrOracleTransport      = errors.New("oracle is unavailable")
	ErrOracleProtocol       = errors.New("oracle returned a malformed reply")
	ErrOracleReplyDiscarded = errors.New("oracle reply discarded after restart")

	// ErrInvariantViolation means the move history and the board went out of sync.
	ErrInvariantViolation = errors.New("game invariant violated")
)
