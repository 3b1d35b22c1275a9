package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/game"
	"github.com/pencilmark/pencilmark/internal/index"
	"github.com/pencilmark/pencilmark/internal/puzzle"
)

const (
	testClues    = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	testSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

func testModel(t *testing.T) *Model {
	t.Helper()

	clues, err := puzzle.ParseGrid(testClues)
	require.NoError(t, err)
	solution, err := puzzle.ParseGrid(testSolution)
	require.NoError(t, err)

	b := board.New()
	require.NoError(t, b.Load(clues, solution))

	m, err := New(Options{
		Dispatcher: game.NewDispatcher(game.NewState(b)),
		Difficulty: puzzle.Easy,
	})
	require.NoError(t, err)
	return m
}

func TestCellBoxes_TileWithoutOverlap(t *testing.T) {
	for a := board.ID(0); a < board.Cells; a++ {
		boxA := cellBox(a)
		assert.GreaterOrEqual(t, boxA.BottomLeft.X, 0.0)
		assert.Less(t, boxA.TopRight.X, float64(boardCols))
		assert.Less(t, boxA.TopRight.Y, float64(boardRows))

		for b := a + 1; b < board.Cells; b++ {
			boxB := cellBox(b)
			overlapX := boxA.BottomLeft.X <= boxB.TopRight.X && boxB.BottomLeft.X <= boxA.TopRight.X
			overlapY := boxA.BottomLeft.Y <= boxB.TopRight.Y && boxB.BottomLeft.Y <= boxA.TopRight.Y
			assert.False(t, overlapX && overlapY, "cells %d and %d overlap", a, b)
		}
	}
}

func TestCellBoxes_ResolveOwnOrigin(t *testing.T) {
	ix := index.New()
	for id := board.ID(0); id < board.Cells; id++ {
		ix.Upsert(id, cellBox(id))
	}
	for id := board.ID(0); id < board.Cells; id++ {
		x, y := cellOrigin(id)
		got, ok := ix.Lookup(index.Point{X: float64(x), Y: float64(y)})
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}

// The spatial index must agree with where View actually draws each
// cell: the rendered character block at a cell's origin shows that
// cell's digit.
func TestView_MatchesGeometry(t *testing.T) {
	m := testModel(t)
	lines := strings.Split(m.View(), "\n")

	m.dispatcher.State().Board().Each(func(id board.ID, c *board.Cell) {
		x, y := cellOrigin(id)
		require.Greater(t, len(lines), y)
		line := lines[y]
		require.GreaterOrEqual(t, len(line), x+cellWidth)

		block := line[x : x+cellWidth]
		want := cellText(c.Value)
		assert.Contains(t, block, want, "cell %d at (%d,%d)", id, x, y)
	})
}

func TestView_StatusAndHelpBelowBoard(t *testing.T) {
	m := testModel(t)
	lines := strings.Split(m.View(), "\n")

	require.Greater(t, len(lines), boardRows+1)
	assert.Contains(t, strings.Join(lines[boardRows:], "\n"), "mode: fill")
	assert.Contains(t, strings.Join(lines[boardRows:], "\n"), "esc quit")
}
