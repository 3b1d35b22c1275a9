package puzzle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pencilmark/pencilmark/internal/board"
)

const (
	wikiClues    = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	wikiSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

func TestSolve_KnownPuzzle(t *testing.T) {
	clues, err := ParseGrid(wikiClues)
	require.NoError(t, err)

	solved, stats, err := Solve(context.Background(), clues)
	require.NoError(t, err)
	assert.Equal(t, wikiSolution, FormatGrid(solved))
	assert.Positive(t, stats.Nodes)
}

func TestSolve_PreservesGivens(t *testing.T) {
	clues, err := ParseGrid(wikiClues)
	require.NoError(t, err)

	solved, _, err := Solve(context.Background(), clues)
	require.NoError(t, err)
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if clues[r][c] != 0 {
				assert.Equal(t, clues[r][c], solved[r][c])
			}
		}
	}
}

func TestSolve_Unsolvable(t *testing.T) {
	clues, err := ParseGrid(wikiClues)
	require.NoError(t, err)
	// Put a contradicting digit next to the 5 in the top-left corner.
	clues[0][1] = 5

	_, _, err = Solve(context.Background(), clues)
	assert.ErrorContains(t, err, "conflict")

	unique, _, err := Unique(context.Background(), clues)
	require.NoError(t, err)
	assert.False(t, unique)
}

func TestSolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Solve(ctx, board.Grid{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnique(t *testing.T) {
	clues, err := ParseGrid(wikiClues)
	require.NoError(t, err)

	unique, _, err := Unique(context.Background(), clues)
	require.NoError(t, err)
	assert.True(t, unique)

	// An empty grid has a vast number of solutions.
	unique, _, err = Unique(context.Background(), board.Grid{})
	require.NoError(t, err)
	assert.False(t, unique)
}

func TestGenerate_Deterministic(t *testing.T) {
	ctx := context.Background()

	a, _, err := Generate(ctx, 12345, Medium)
	require.NoError(t, err)
	b, _, err := Generate(ctx, 12345, Medium)
	require.NoError(t, err)

	assert.Equal(t, a.Clues, b.Clues, "same seed must reproduce the puzzle")
	assert.Equal(t, a.Solution, b.Solution)

	c, _, err := Generate(ctx, 54321, Medium)
	require.NoError(t, err)
	assert.NotEqual(t, a.Clues, c.Clues)
}

func TestGenerate_UniqueAndConsistent(t *testing.T) {
	ctx := context.Background()

	p, _, err := Generate(ctx, 7, Easy)
	require.NoError(t, err)

	unique, _, err := Unique(ctx, p.Clues)
	require.NoError(t, err)
	assert.True(t, unique, "generated puzzle must have exactly one solution")

	solved, _, err := Solve(ctx, p.Clues)
	require.NoError(t, err)
	assert.Equal(t, p.Solution, solved)

	// Solution is a complete valid grid.
	assert.Equal(t, board.Cells, CountGivens(p.Solution))
}

func TestGenerate_GivensTrackDifficulty(t *testing.T) {
	ctx := context.Background()

	easy, _, err := Generate(ctx, 99, Easy)
	require.NoError(t, err)
	hard, _, err := Generate(ctx, 99, Hard)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, CountGivens(easy.Clues), targetGivens(Easy))
	assert.LessOrEqual(t, CountGivens(hard.Clues), CountGivens(easy.Clues))
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid(wikiSolution)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), g[0][0])
	assert.Equal(t, uint8(9), g[8][8])

	g, err = ParseGrid(wikiClues)
	require.NoError(t, err)
	assert.Zero(t, g[0][2])
	assert.Equal(t, wikiClues, FormatGrid(g))
}

func TestParseGrid_ZeroMeansEmpty(t *testing.T) {
	withZeros := ""
	for _, r := range wikiClues {
		if r == '.' {
			withZeros += "0"
		} else {
			withZeros += string(r)
		}
	}
	a, err := ParseGrid(wikiClues)
	require.NoError(t, err)
	b, err := ParseGrid(withZeros)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseGrid_IgnoresLayoutWhitespace(t *testing.T) {
	spaced := ""
	for i, r := range wikiClues {
		spaced += string(r)
		if (i+1)%9 == 0 {
			spaced += "\n"
		}
	}
	g, err := ParseGrid(spaced)
	require.NoError(t, err)
	assert.Equal(t, wikiClues, FormatGrid(g))
}

func TestParseGrid_Errors(t *testing.T) {
	cases := map[string]string{
		"too short":    wikiClues[:80],
		"too long":     wikiClues + "1",
		"bad rune":     "x" + wikiClues[1:],
		"empty string": "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGrid(in)
			assert.Error(t, err)
		})
	}
}

func TestDifficultyRoundTrip(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard, Expert} {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDifficulty("nightmare")
	assert.Error(t, err)
}
