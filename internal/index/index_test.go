package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pencilmark/pencilmark/internal/board"
)

func unitBox(row, col uint8) BoundingBox {
	return BoundingBox{
		BottomLeft: Point{X: float64(col - 1), Y: float64(row - 1)},
		TopRight:   Point{X: float64(col), Y: float64(row)},
	}
}

func TestLookup_Empty(t *testing.T) {
	ix := New()
	_, ok := ix.Lookup(Point{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestLookup_FindsContainingCell(t *testing.T) {
	ix := New()
	for row := uint8(1); row <= 9; row++ {
		for col := uint8(1); col <= 9; col++ {
			ix.Upsert(board.IDAt(row, col), unitBox(row, col))
		}
	}
	assert.Equal(t, 81, ix.Len())

	id, ok := ix.Lookup(Point{X: 4.5, Y: 2.5})
	assert.True(t, ok)
	assert.Equal(t, board.IDAt(3, 5), id)
}

func TestLookup_InclusiveBounds(t *testing.T) {
	ix := New()
	ix.Upsert(board.IDAt(1, 1), unitBox(1, 1))

	for _, p := range []Point{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {0.5, 0.5}} {
		id, ok := ix.Lookup(p)
		assert.True(t, ok, "point %+v should hit the box edge-inclusively", p)
		assert.Equal(t, board.IDAt(1, 1), id)
	}

	_, ok := ix.Lookup(Point{X: 1.01, Y: 0.5})
	assert.False(t, ok, "points outside the box miss")
}

func TestUpsert_LatestWins(t *testing.T) {
	ix := New()
	id := board.IDAt(2, 2)
	ix.Upsert(id, unitBox(2, 2))
	ix.Upsert(id, unitBox(7, 7))
	assert.Equal(t, 1, ix.Len())

	_, ok := ix.Lookup(Point{X: 1.5, Y: 1.5})
	assert.False(t, ok, "old geometry no longer resolves")

	got, ok := ix.Lookup(Point{X: 6.5, Y: 6.5})
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
