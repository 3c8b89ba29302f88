package ninedt

import "github.com/rocketscienceinc/ninedt-backend/internal/entity"

// Outcome is the result of evaluating a board.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// WinLines lists every [row, column] line that wins, in evaluation order:
// rows, columns, then the two full diagonals.
var WinLines = [][4][2]int{
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
	{{3, 0}, {3, 1}, {3, 2}, {3, 3}},

	{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
	{{0, 3}, {1, 3}, {2, 3}, {3, 3}},

	{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
	{{3, 0}, {2, 1}, {1, 2}, {0, 3}},
}

// Evaluation is what the coordinator needs after every rebuild.
type Evaluation struct {
	Outcome     Outcome
	FullColumns [entity.Columns]bool
}

func (that Evaluation) IsTerminal() bool {
	return that.Outcome != OutcomeNone
}

// Evaluate checks for a win first and only then for a draw. Column
// fullness is always filled in.
func Evaluate(board entity.Board) Evaluation {
	evaluation := Evaluation{
		Outcome:     OutcomeNone,
		FullColumns: board.FullColumns(),
	}

	if HasWinningLine(board) {
		evaluation.Outcome = OutcomeWin
		return evaluation
	}

	if board.IsFull() {
		evaluation.Outcome = OutcomeDraw
	}

	return evaluation
}

// HasWinningLine reports whether any line holds four equal non-empty marks.
// Who owns the line is not needed: only the side that just moved can have
// completed it.
func HasWinningLine(board entity.Board) bool {
	for _, line := range WinLines {
		a := board[line[0][0]][line[0][1]]
		b := board[line[1][0]][line[1][1]]
		c := board[line[2][0]][line[2][1]]
		d := board[line[3][0]][line[3][1]]

		if a != entity.EmptyCell && a == b && b == c && c == d {
			return true
		}
	}

	return false
}
