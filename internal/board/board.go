// Package board holds the 81-cell Sudoku board: per-cell identity,
// player value, and the fixed flag for puzzle givens.
//
// The board owns no interaction logic. Selection and input dispatch
// live in the game package; this package only guarantees that
// coordinates and fixed flags are set once at construction and that
// seeding operations (Load, Reset, Reveal) keep values consistent
// with the clue and solution grids.
package board

import (
	"fmt"
	"strings"

	"github.com/pencilmark/pencilmark/internal/cell"
)

// Size is the edge length of the board; Cells the total cell count.
const (
	Size  = 9
	Cells = Size * Size
)

// ID identifies one of the 81 cells, in row-major order (0..80).
type ID int

// Grid is the interchange form for clue and solution grids:
// 0 means no digit, 1..9 a digit. Indexed [row][column] from 0.
type Grid [Size][Size]uint8

// Cell is one board cell. Coords and Fixed are set at seeding time and
// never mutated by player input; Value changes continuously.
type Cell struct {
	Coords cell.Coordinates
	Value  cell.Value
	Fixed  bool
}

// Board is the full 9x9 grid plus the solution used for reveal.
type Board struct {
	cells    [Cells]Cell
	solution Grid
}

// New creates an empty board: all cells Empty, none fixed.
func New() *Board {
	b := &Board{}
	for row := uint8(1); row <= Size; row++ {
		for col := uint8(1); col <= Size; col++ {
			b.cells[IDAt(row, col)] = Cell{
				Coords: cell.NewCoordinates(row, col),
				Value:  cell.Empty{},
			}
		}
	}
	return b
}

// IDAt converts 1-based (row, column) to a cell ID.
func IDAt(row, col uint8) ID {
	return ID(row-1)*Size + ID(col-1)
}

// Valid reports whether id names one of the 81 cells.
func Valid(id ID) bool {
	return id >= 0 && id < Cells
}

// Cell returns the cell with the given ID. The pointer stays valid for
// the board's lifetime; callers mutate Value through it.
func (b *Board) Cell(id ID) *Cell {
	return &b.cells[id]
}

// At returns the cell at 1-based (row, column).
func (b *Board) At(row, col uint8) *Cell {
	return &b.cells[IDAt(row, col)]
}

// Each calls fn for every cell in row-major order.
func (b *Board) Each(fn func(id ID, c *Cell)) {
	for i := range b.cells {
		fn(ID(i), &b.cells[i])
	}
}

// Load seeds the board from a clue grid and its completed solution.
// Cells with a clue digit become Filled and Fixed; all others become
// Empty and mutable. The solution is retained for Reveal.
//
// The clue grid must be consistent with the solution: every clue digit
// must match the solution at the same position, and the solution must
// be complete.
func (b *Board) Load(clues, solution Grid) error {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if d := solution[r][c]; !cell.IsValidDigit(d) {
				return fmt.Errorf("load board: solution incomplete at r%dc%d", r+1, c+1)
			}
			if d := clues[r][c]; d != 0 && d != solution[r][c] {
				return fmt.Errorf("load board: clue %d at r%dc%d contradicts solution %d",
					d, r+1, c+1, solution[r][c])
			}
		}
	}

	b.solution = solution
	for r := uint8(1); r <= Size; r++ {
		for c := uint8(1); c <= Size; c++ {
			cl := b.At(r, c)
			if d := clues[r-1][c-1]; d != 0 {
				cl.Value = cell.Filled(d)
				cl.Fixed = true
			} else {
				cl.Value = cell.Empty{}
				cl.Fixed = false
			}
		}
	}
	return nil
}

// Reset clears every non-fixed cell back to Empty, restoring the board
// to its as-dealt state. Fixed cells are untouched.
func (b *Board) Reset() {
	for i := range b.cells {
		if !b.cells[i].Fixed {
			b.cells[i].Value = cell.Empty{}
		}
	}
}

// Reveal overwrites every cell's value with the solution digit.
// Fixed flags are unchanged: the givens stay givens.
func (b *Board) Reveal() {
	for r := uint8(1); r <= Size; r++ {
		for c := uint8(1); c <= Size; c++ {
			b.At(r, c).Value = cell.Filled(b.solution[r-1][c-1])
		}
	}
}

// Solution returns the completed grid the board was seeded with.
func (b *Board) Solution() Grid {
	return b.solution
}

// Clues returns the clue grid implied by the fixed cells.
func (b *Board) Clues() Grid {
	var g Grid
	for i := range b.cells {
		if b.cells[i].Fixed {
			if f, ok := b.cells[i].Value.(cell.Filled); ok {
				co := b.cells[i].Coords
				g[co.Row-1][co.Column-1] = uint8(f)
			}
		}
	}
	return g
}

// Values returns the currently filled digits as a grid; empty and
// marked cells report 0.
func (b *Board) Values() Grid {
	var g Grid
	for i := range b.cells {
		if f, ok := b.cells[i].Value.(cell.Filled); ok {
			co := b.cells[i].Coords
			g[co.Row-1][co.Column-1] = uint8(f)
		}
	}
	return g
}

// Solved reports whether every cell is filled with its solution digit.
func (b *Board) Solved() bool {
	return b.Values() == b.solution
}

// String renders a compact nine-line view for logs and diagnostics:
// filled digits as-is, empty cells as '.', marked cells as '+'.
func (b *Board) String() string {
	var sb strings.Builder
	for r := uint8(1); r <= Size; r++ {
		for c := uint8(1); c <= Size; c++ {
			switch v := b.At(r, c).Value.(type) {
			case cell.Filled:
				sb.WriteByte('0' + uint8(v))
			case cell.Marked:
				sb.WriteByte('+')
			default:
				sb.WriteByte('.')
			}
		}
		if r < Size {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
