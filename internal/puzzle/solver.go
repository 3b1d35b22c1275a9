// Package puzzle deals in clue grids: solving them, checking solution
// uniqueness, generating fresh puzzles, and converting to and from the
// 81-character line format.
package puzzle

import (
	"context"
	"fmt"
	"time"

	"github.com/pencilmark/pencilmark/internal/board"
)

// Stats reports the work a solve or generate call performed.
type Stats struct {
	// Nodes is the number of candidate placements tried.
	Nodes int
	// Duration is wall time spent.
	Duration time.Duration
}

// Solve completes a clue grid by backtracking search. The input is not
// modified. Cancellation via ctx aborts the search; the error then
// reports ctx.Err.
func Solve(ctx context.Context, clues board.Grid) (board.Grid, Stats, error) {
	start := time.Now()
	grid := clues
	nodes := 0

	// Backtracking only guards new placements; contradictions among the
	// givens themselves have to be rejected up front.
	if r, c, ok := conflict(&grid); ok {
		return board.Grid{}, Stats{Duration: time.Since(start)},
			fmt.Errorf("solve: givens conflict at row %d column %d", r+1, c+1)
	}

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := findEmpty(&grid)
		if !ok {
			return true
		}
		for v := uint8(1); v <= 9; v++ {
			nodes++
			if allowed(&grid, r, c, v) {
				grid[r][c] = v
				if dfs() {
					return true
				}
				grid[r][c] = 0
			}
		}
		return false
	}

	stats := func() Stats { return Stats{Nodes: nodes, Duration: time.Since(start)} }
	if !dfs() {
		if err := ctx.Err(); err != nil {
			return board.Grid{}, stats(), fmt.Errorf("solve: %w", err)
		}
		return board.Grid{}, stats(), fmt.Errorf("solve: no solution exists")
	}
	return grid, stats(), nil
}

// Unique reports whether the clue grid has exactly one solution. The
// search stops as soon as a second solution is found.
func Unique(ctx context.Context, clues board.Grid) (bool, Stats, error) {
	start := time.Now()
	grid := clues
	nodes := 0
	count := 0

	if _, _, ok := conflict(&grid); ok {
		return false, Stats{Duration: time.Since(start)}, nil
	}

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil || count >= 2 {
			return true
		}
		r, c, ok := findEmpty(&grid)
		if !ok {
			count++
			return count >= 2
		}
		for v := uint8(1); v <= 9; v++ {
			nodes++
			if allowed(&grid, r, c, v) {
				grid[r][c] = v
				if dfs() {
					return true
				}
				grid[r][c] = 0
			}
		}
		return false
	}
	_ = dfs()

	st := Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, fmt.Errorf("uniqueness check: %w", err)
	}
	return count == 1, st, nil
}

// conflict reports the first given that violates a row, column, or box
// constraint against another given.
func conflict(g *board.Grid) (int, int, bool) {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			g[r][c] = 0
			ok := allowed(g, r, c, v)
			g[r][c] = v
			if !ok {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func findEmpty(g *board.Grid) (int, int, bool) {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if g[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// allowed checks the row, column, and box constraints for placing v.
func allowed(g *board.Grid, r, c int, v uint8) bool {
	for i := 0; i < board.Size; i++ {
		if g[r][i] == v || g[i][c] == v {
			return false
		}
	}
	br, bc := (r/3)*3, (c/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if g[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}
