package tui

import (
	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/index"
)

// Board layout in terminal cells. Each Sudoku cell is a fixed-size
// block; an extra gutter separates the 3x3 squares. The board renders
// at the view origin, so these coordinates are also screen coordinates
// for mouse resolution.
const (
	cellWidth  = 4
	cellHeight = 1
	gutterCols = 2
	gutterRows = 1
)

// cellOrigin returns the top-left terminal position of a cell block.
func cellOrigin(id board.ID) (x, y int) {
	row := int(id) / board.Size
	col := int(id) % board.Size
	x = col*cellWidth + (col/3)*gutterCols
	y = row*cellHeight + (row/3)*gutterRows
	return x, y
}

// cellBox is the inclusive bounding box the spatial index stores for a
// cell. It must agree exactly with where View draws the cell.
func cellBox(id board.ID) index.BoundingBox {
	x, y := cellOrigin(id)
	return index.BoundingBox{
		BottomLeft: index.Point{X: float64(x), Y: float64(y)},
		TopRight:   index.Point{X: float64(x + cellWidth - 1), Y: float64(y + cellHeight - 1)},
	}
}

// boardCols and boardRows are the rendered board's dimensions.
const (
	boardCols = board.Size*cellWidth + 2*gutterCols
	boardRows = board.Size*cellHeight + 2*gutterRows
)
