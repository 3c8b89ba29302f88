package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
)

// RenderBoard prints the board top row first. The human's tiles are X.
func RenderBoard(w io.Writer, game entity.Game) {
	header := make([]string, entity.Columns)
	for column := range header {
		header[column] = fmt.Sprint(column + 1)
	}
	fmt.Fprintln(w, strings.Join(header, " "))

	for _, row := range game.Board {
		cells := make([]string, entity.Columns)
		for column, mark := range row {
			cells[column] = symbol(mark, game.HumanMark)
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

func symbol(mark, human entity.Mark) string {
	switch mark {
	case entity.EmptyCell:
		return "."
	case human:
		return "X"
	default:
		return "O"
	}
}
