package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
)

type GameStatus string

const (
	StatusNotStarted   GameStatus = "not_started"
	StatusHumanTurn    GameStatus = "human_turn"
	StatusOracleTurn   GameStatus = "oracle_turn"
	StatusOracleFailed GameStatus = "oracle_failed"
	StatusHumanWon     GameStatus = "human_won"
	StatusOracleWon    GameStatus = "oracle_won"
	StatusDraw         GameStatus = "draw"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the whole state of one game. The board and the full columns are
// always derived from History.
type Game struct {
	ID          string        `json:"id,omitempty"`
	History     MoveHistory   `json:"history"`
	Board       Board         `json:"board"`
	FullColumns [Columns]bool `json:"full_columns"`
	Status      GameStatus    `json:"status"`
	HumanMark   Mark          `json:"human_mark,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
	Revision    uint64        `json:"revision"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		History: MoveHistory{},
		Status:  StatusNotStarted,
	}
}

// Clone returns a deep copy that shares nothing with the receiver.
func (that *Game) Clone() Game {
	out := *that
	out.History = that.History.Clone()
	return out
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusNotStarted
}

func (that *Game) IsFinished() bool {
	switch that.Status {
	case StatusHumanWon, StatusOracleWon, StatusDraw:
		return true
	default:
		return false
	}
}

func (that *Game) IsOngoing() bool {
	switch that.Status {
	case StatusHumanTurn, StatusOracleTurn, StatusOracleFailed:
		return true
	default:
		return false
	}
}

// AcceptsMoves tells the presentation layer whether column buttons are live.
func (that *Game) AcceptsMoves() bool {
	return that.Status == StatusHumanTurn
}

// ConfirmHumanTurn returns nil only when a human move may be played now.
func (that *Game) ConfirmHumanTurn() error {
	switch that.Status {
	case StatusHumanTurn:
		return nil
	case StatusNotStarted:
		return apperror.ErrGameIsNotStarted
	case StatusHumanWon, StatusOracleWon, StatusDraw:
		return apperror.ErrGameFinished
	case StatusOracleTurn, StatusOracleFailed:
		return apperror.ErrNotYourTurn
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) StatusText() string {
	switch that.Status {
	case StatusNotStarted:
		return "Not Yet Started"
	case StatusHumanTurn:
		return "Your Move"
	case StatusOracleTurn:
		return "Bot's Move"
	case StatusOracleFailed:
		return "The Bot is unavailable"
	case StatusHumanWon:
		return "You won!"
	case StatusOracleWon:
		return "The Bot won!"
	case StatusDraw:
		return "Its a draw!"
	default:
		return string(that.Status)
	}
}

// MarshalJSON adds the derived presentation fields.
func (that Game) MarshalJSON() ([]byte, error) {
	type plain Game

	return json.Marshal(struct {
		plain
		AcceptsMoves bool   `json:"accepts_moves"`
		StatusText   string `json:"status_text"`
	}{
		plain:        plain(that),
		AcceptsMoves: that.AcceptsMoves(),
		StatusText:   that.StatusText(),
	})
}
