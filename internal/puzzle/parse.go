package puzzle

import (
	"fmt"
	"strings"

	"github.com/pencilmark/pencilmark/internal/board"
)

// ParseGrid decodes the 81-character line format: one character per
// cell in row-major order, '1'..'9' for digits, '.' or '0' for empty.
// Whitespace is ignored, so multi-line layouts parse too.
func ParseGrid(s string) (board.Grid, error) {
	var g board.Grid
	i := 0
	for _, r := range s {
		switch {
		case r == '.' || r == '0':
			i++
		case r >= '1' && r <= '9':
			if i >= board.Cells {
				return board.Grid{}, fmt.Errorf("parse grid: more than %d cells", board.Cells)
			}
			g[i/board.Size][i%board.Size] = uint8(r - '0')
			i++
		case r == ' ' || r == '\n' || r == '\r' || r == '\t':
			// layout whitespace
		default:
			return board.Grid{}, fmt.Errorf("parse grid: invalid character %q at cell %d", r, i)
		}
		if i > board.Cells {
			return board.Grid{}, fmt.Errorf("parse grid: more than %d cells", board.Cells)
		}
	}
	if i != board.Cells {
		return board.Grid{}, fmt.Errorf("parse grid: got %d cells, want %d", i, board.Cells)
	}
	return g, nil
}

// FormatGrid encodes a grid as an 81-character line, '.' for empty.
func FormatGrid(g board.Grid) string {
	var sb strings.Builder
	sb.Grow(board.Cells)
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if d := g[r][c]; d == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + d)
			}
		}
	}
	return sb.String()
}

// CountGivens returns the number of non-empty cells in a grid.
func CountGivens(g board.Grid) int {
	n := 0
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}
