package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSquare_AllCells(t *testing.T) {
	// Standard left-to-right, top-to-bottom box numbering.
	for row := uint8(1); row <= 9; row++ {
		for col := uint8(1); col <= 9; col++ {
			want := ((row-1)/3)*3 + (col-1)/3 + 1
			assert.Equal(t, want, ComputeSquare(row, col), "square for r%dc%d", row, col)
		}
	}
}

func TestComputeSquare_CenterCell(t *testing.T) {
	assert.Equal(t, uint8(5), ComputeSquare(4, 5))
}

func TestNewCoordinates(t *testing.T) {
	c := NewCoordinates(9, 1)
	assert.Equal(t, uint8(9), c.Row)
	assert.Equal(t, uint8(1), c.Column)
	assert.Equal(t, uint8(7), c.Square)
	assert.Equal(t, "r9c1", c.String())
}
