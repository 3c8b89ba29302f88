package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
)

const (
	Rows    = 4
	Columns = 4
	Cells   = Rows * Columns
)

// Mark is the content of a single board cell.
type Mark int

const (
	EmptyCell Mark = iota
	Player1
	Player2
)

// Board is indexed [row][column]; row 0 is the top, tiles fall towards Rows-1.
type Board [Rows][Columns]Mark

// MoveHistory is the ordered list of columns played so far.
type MoveHistory []int

// PlayerAt returns the mark that owns the move at history index i.
func PlayerAt(i int) Mark {
	if i%2 == 0 {
		return Player1
	}
	return Player2
}

func (that MoveHistory) Clone() MoveHistory {
	out := make(MoveHistory, len(that))
	copy(out, that)
	return out
}

// Append returns a new history; the receiver is never modified.
func (that MoveHistory) Append(column int) MoveHistory {
	out := make(MoveHistory, len(that), len(that)+1)
	copy(out, that)
	return append(out, column)
}

func (that MoveHistory) HasPrefix(prefix MoveHistory) bool {
	if len(prefix) > len(that) {
		return false
	}

	for i, column := range prefix {
		if that[i] != column {
			return false
		}
	}

	return true
}

// BuildBoard replays history on an empty board.
func BuildBoard(history MoveHistory) (Board, error) {
	var board Board

	for i, column := range history {
		if _, err := board.Drop(column, PlayerAt(i)); err != nil {
			if errors.Is(err, apperror.ErrColumnFull) {
				return Board{}, fmt.Errorf("%w: move %d: %w", apperror.ErrInvariantViolation, i, err)
			}
			return Board{}, fmt.Errorf("move %d: %w", i, err)
		}
	}

	return board, nil
}

// Drop places mark at the lowest empty row of column and returns that row.
func (that *Board) Drop(column int, mark Mark) (int, error) {
	if column < 0 || column >= Columns {
		return -1, fmt.Errorf("%w: column %d", apperror.ErrInvalidColumn, column)
	}

	for row := Rows - 1; row >= 0; row-- {
		if that[row][column] == EmptyCell {
			that[row][column] = mark
			return row, nil
		}
	}

	return -1, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
}

// FullColumns reports, per column, whether its top cell is occupied.
func (that *Board) FullColumns() [Columns]bool {
	var full [Columns]bool
	for column := 0; column < Columns; column++ {
		full[column] = that[0][column] != EmptyCell
	}
	return full
}

func (that *Board) IsFull() bool {
	for _, full := range that.FullColumns() {
		if !full {
			return false
		}
	}
	return true
}
