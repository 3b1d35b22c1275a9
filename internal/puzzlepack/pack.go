// Package puzzlepack loads curated puzzle collections from CUE files.
//
// A pack directory holds one or more .cue files declaring a `pack`
// struct; every file is unified against the embedded schema, so shape
// errors surface with CUE positions before any puzzle is parsed. On
// top of the schema, each puzzle's clue grid is checked for an actual
// unique solution, which a regex cannot express.
package puzzlepack

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"golang.org/x/text/unicode/norm"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/puzzle"
)

//go:embed schema.cue
var schemaSource string

// Pack is a validated puzzle collection.
type Pack struct {
	Name        string
	Description string
	Puzzles     []Entry
}

// Entry is one puzzle in a pack, ready to seed a board.
type Entry struct {
	Label      string
	Difficulty puzzle.Difficulty
	Clues      board.Grid
	Solution   board.Grid
}

// Find returns the entry with the given label.
func (p *Pack) Find(label string) (*Entry, bool) {
	for i := range p.Puzzles {
		if p.Puzzles[i].Label == label {
			return &p.Puzzles[i], true
		}
	}
	return nil, false
}

// cueFile is the decode target for a unified pack value.
type cueFile struct {
	Pack struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Puzzles     map[string]struct {
			Difficulty string `json:"difficulty"`
			Givens     string `json:"givens"`
			Solution   string `json:"solution"`
		} `json:"puzzles"`
	} `json:"pack"`
}

// LoadDir loads and validates a pack directory.
func LoadDir(ctx context.Context, dir string) (*Pack, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &PackError{Code: ErrCodePackNotFound,
			Message: fmt.Sprintf("pack directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &PackError{Code: ErrCodePackNotFound,
			Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return nil, &PackError{Code: ErrCodePackSchema,
			Message: fmt.Sprintf("compile schema: %v", err)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &PackError{Code: ErrCodePackLoad, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &PackError{Code: ErrCodePackLoad,
			Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &PackError{Code: ErrCodePackLoad,
			Message: fmt.Sprintf("building CUE value: %v", err), Pos: value.Pos()}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &PackError{Code: ErrCodePackSchema,
			Message: fmt.Sprintf("pack does not match schema: %v", err)}
	}

	var raw cueFile
	if err := unified.Decode(&raw); err != nil {
		return nil, &PackError{Code: ErrCodePackSchema,
			Message: fmt.Sprintf("decoding pack: %v", err)}
	}

	return buildPack(ctx, raw)
}

// buildPack converts decoded CUE data into a Pack, verifying each
// puzzle's solvability and solution consistency.
func buildPack(ctx context.Context, raw cueFile) (*Pack, error) {
	p := &Pack{
		// Pack names render in UIs and key storage lookups, so bring
		// combining sequences to a single canonical form.
		Name:        norm.NFC.String(raw.Pack.Name),
		Description: raw.Pack.Description,
	}

	labels := make([]string, 0, len(raw.Pack.Puzzles))
	for label := range raw.Pack.Puzzles {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		rp := raw.Pack.Puzzles[label]

		diff, err := puzzle.ParseDifficulty(rp.Difficulty)
		if err != nil {
			return nil, &PackError{Code: ErrCodePackPuzzle,
				Message: fmt.Sprintf("puzzle %q: %v", label, err)}
		}
		clues, err := puzzle.ParseGrid(rp.Givens)
		if err != nil {
			return nil, &PackError{Code: ErrCodePackPuzzle,
				Message: fmt.Sprintf("puzzle %q: %v", label, err)}
		}

		var solution board.Grid
		if rp.Solution != "" {
			solution, err = puzzle.ParseGrid(rp.Solution)
			if err != nil {
				return nil, &PackError{Code: ErrCodePackPuzzle,
					Message: fmt.Sprintf("puzzle %q: %v", label, err)}
			}
			for r := 0; r < board.Size; r++ {
				for c := 0; c < board.Size; c++ {
					if d := clues[r][c]; d != 0 && d != solution[r][c] {
						return nil, &PackError{Code: ErrCodePackPuzzle,
							Message: fmt.Sprintf("puzzle %q: given at r%dc%d contradicts solution", label, r+1, c+1)}
					}
				}
			}
		} else {
			unique, _, err := puzzle.Unique(ctx, clues)
			if err != nil {
				return nil, &PackError{Code: ErrCodePackPuzzle,
					Message: fmt.Sprintf("puzzle %q: %v", label, err)}
			}
			if !unique {
				return nil, &PackError{Code: ErrCodePackPuzzle,
					Message: fmt.Sprintf("puzzle %q: no unique solution", label)}
			}
			solution, _, err = puzzle.Solve(ctx, clues)
			if err != nil {
				return nil, &PackError{Code: ErrCodePackPuzzle,
					Message: fmt.Sprintf("puzzle %q: %v", label, err)}
			}
		}

		p.Puzzles = append(p.Puzzles, Entry{
			Label:      norm.NFC.String(label),
			Difficulty: diff,
			Clues:      clues,
			Solution:   solution,
		})
	}

	if len(p.Puzzles) == 0 {
		return nil, &PackError{Code: ErrCodePackPuzzle, Message: "pack declares no puzzles"}
	}
	return p, nil
}
