package puzzle

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pencilmark/pencilmark/internal/board"
)

// Difficulty selects how many givens a generated puzzle keeps.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// String returns the stable name used on the CLI and in storage.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "expert"
	}
}

// ParseDifficulty is the inverse of String.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "expert":
		return Expert, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q", s)
	}
}

func targetGivens(d Difficulty) int {
	switch d {
	case Easy:
		return 40
	case Medium:
		return 34
	case Hard:
		return 28
	default:
		return 24
	}
}

// carveBudget caps the time spent removing clues. Carving past the
// budget just yields an easier puzzle than asked for, never a broken
// one.
const carveBudget = 900 * time.Millisecond

// Puzzle is a generated clue grid plus the solution it was carved from.
type Puzzle struct {
	Seed       int64
	Difficulty Difficulty
	Clues      board.Grid
	Solution   board.Grid
}

// Generate produces a puzzle with a unique solution. The same seed and
// difficulty always yield the same puzzle.
//
// It works in two phases: fill an empty grid into a random complete
// solution, then carve clues away in shuffled order, keeping a removal
// only if the puzzle stays uniquely solvable.
func Generate(ctx context.Context, seed int64, diff Difficulty) (*Puzzle, Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	var solution board.Grid
	if !fillRandom(ctx, rng, &solution) {
		return nil, Stats{Duration: time.Since(start)}, fmt.Errorf("generate: %w", ctx.Err())
	}

	positions := make([]int, board.Cells)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})

	clues := solution
	givens := board.Cells
	target := targetGivens(diff)
	deadline := start.Add(carveBudget)
	nodes := 0

	for _, pos := range positions {
		if givens <= target || time.Now().After(deadline) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, Stats{Nodes: nodes, Duration: time.Since(start)},
				fmt.Errorf("generate: %w", err)
		}
		r, c := pos/board.Size, pos%board.Size
		old := clues[r][c]
		clues[r][c] = 0
		unique, st, err := Unique(ctx, clues)
		nodes += st.Nodes
		if err != nil {
			return nil, Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		if unique {
			givens--
		} else {
			clues[r][c] = old
		}
	}

	p := &Puzzle{Seed: seed, Difficulty: diff, Clues: clues, Solution: solution}
	return p, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// fillRandom completes an empty grid into a full valid solution,
// trying digits in rng order at each cell.
func fillRandom(ctx context.Context, rng *rand.Rand, grid *board.Grid) bool {
	var nums [board.Size]uint8
	for i := range nums {
		nums[i] = uint8(i + 1)
	}
	var dfs func(r, c int) bool
	dfs = func(r, c int) bool {
		if ctx.Err() != nil {
			return false
		}
		if r == board.Size {
			return true
		}
		nr, nc := r, c+1
		if nc == board.Size {
			nr, nc = r+1, 0
		}
		rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
		for _, v := range nums {
			if allowed(grid, r, c, v) {
				grid[r][c] = v
				if dfs(nr, nc) {
					return true
				}
				grid[r][c] = 0
			}
		}
		return false
	}
	return dfs(0, 0)
}
