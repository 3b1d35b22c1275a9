// Package index maps pointer positions to board cells.
//
// The rendering collaborator owns cell geometry; whenever a cell's
// on-screen box changes it upserts the new box here. Click resolution
// then asks which cell, if any, contains a point. The index must be
// current before click dispatch runs in a tick - the game package
// enforces that ordering.
package index

import "github.com/pencilmark/pencilmark/internal/board"

// Point is a position in board-local coordinates.
type Point struct {
	X float64
	Y float64
}

// BoundingBox is the axis-aligned rectangle a cell currently occupies.
type BoundingBox struct {
	BottomLeft Point
	TopRight   Point
}

// Contains reports whether p lies within the box on both axes.
// Bounds are inclusive.
func (bb BoundingBox) Contains(p Point) bool {
	return p.X >= bb.BottomLeft.X && p.X <= bb.TopRight.X &&
		p.Y >= bb.BottomLeft.Y && p.Y <= bb.TopRight.Y
}

// Index is the cell-geometry lookup table.
type Index struct {
	boxes map[board.ID]BoundingBox
}

// New creates an empty index.
func New() *Index {
	return &Index{boxes: make(map[board.ID]BoundingBox, board.Cells)}
}

// Upsert records the current bounding box for a cell.
// Idempotent: the latest call for an ID wins.
func (ix *Index) Upsert(id board.ID, box BoundingBox) {
	ix.boxes[id] = box
}

// Lookup returns the cell whose box contains p, if any.
//
// A linear scan is fine here: the cell count is fixed and small, so
// spatial partitioning would buy nothing. Cells tile the board without
// overlap by construction, which is why the first match can be
// returned without tie-breaking.
func (ix *Index) Lookup(p Point) (board.ID, bool) {
	for id, box := range ix.boxes {
		if box.Contains(p) {
			return id, true
		}
	}
	return 0, false
}

// Len returns the number of indexed cells.
func (ix *Index) Len() int {
	return len(ix.boxes)
}
