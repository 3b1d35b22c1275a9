package cell

import "fmt"

// Coordinates is the immutable identity of a cell on the board.
//
// Row and Column are in 1..9; Square is derived from them at
// construction and never recomputed afterwards. Squares are numbered
// 1..9 starting at the top left, in standard left-to-right reading
// order ("box" in Sudoku terms, but that name collides with the
// geometry types elsewhere in this repo).
type Coordinates struct {
	Row    uint8
	Column uint8
	Square uint8
}

// NewCoordinates builds the identity for (row, column), computing the
// containing square. Both arguments must be in 1..9.
func NewCoordinates(row, column uint8) Coordinates {
	return Coordinates{
		Row:    row,
		Column: column,
		Square: ComputeSquare(row, column),
	}
}

// ComputeSquare returns which 3x3 square the cell at (row, column)
// belongs to.
func ComputeSquare(row, column uint8) uint8 {
	const width = 3
	majorRow := (row - 1) / width
	majorCol := (column - 1) / width
	return majorRow*width + majorCol + 1
}

// String renders the coordinates in the compact "r4c5" form used by
// scenario files and diagnostics.
func (c Coordinates) String() string {
	return fmt.Sprintf("r%dc%d", c.Row, c.Column)
}
