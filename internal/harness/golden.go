package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
)

// RunWithGolden executes a scenario and compares its trace and final
// state against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc *Scenario) error {
	t.Helper()

	result, err := Run(sc)
	if err != nil {
		return err
	}
	if err := result.Check(sc); err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, []byte(result.snapshot(sc)))
	return nil
}

// snapshot renders the run as stable text: the per-step trace, then
// the final mode, selection, board, and any marked cells.
func (r *Result) snapshot(sc *Scenario) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario: %s\n", sc.Name)
	for _, line := range r.Trace {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString("--\n")
	fmt.Fprintf(&sb, "mode: %s\n", r.State.Mode())
	fmt.Fprintf(&sb, "selected: %s\n", formatIDs(r.State.Selected()))
	sb.WriteString("board:\n")
	sb.WriteString(r.State.Board().String())
	sb.WriteByte('\n')

	var marks []string
	r.State.Board().Each(func(id board.ID, c *board.Cell) {
		if _, ok := c.Value.(cell.Marked); ok {
			marks = append(marks, fmt.Sprintf("%s %s", c.Coords, ValueToken(c.Value)))
		}
	})
	if len(marks) > 0 {
		sb.WriteString("marks:\n")
		for _, m := range marks {
			sb.WriteString(m)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
