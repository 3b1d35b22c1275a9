// Package harness runs scripted game scenarios for conformance
// testing. A scenario deals a known puzzle, feeds pointer and keyboard
// steps through the real dispatcher (each step is one logic tick), and
// checks the final state or a golden trace.
//
// Clicks go through the spatial index like real input: the harness
// lays the board out on a unit grid and sends pointer positions, so
// click resolution is exercised rather than bypassed.
package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
	"github.com/pencilmark/pencilmark/internal/game"
	"github.com/pencilmark/pencilmark/internal/index"
	"github.com/pencilmark/pencilmark/internal/keymap"
	"github.com/pencilmark/pencilmark/internal/puzzle"
)

// Result holds everything a scenario run produced.
type Result struct {
	// State is the final game state.
	State *game.State

	// Journal is the full event journal the dispatcher recorded.
	Journal []game.JournalEntry

	// Trace has one line per step, with the dispatcher's view of the
	// state after the step's tick settled.
	Trace []string
}

type memJournal struct {
	entries []game.JournalEntry
}

func (j *memJournal) Record(e game.JournalEntry) error {
	j.entries = append(j.entries, e)
	return nil
}

// Run executes a scenario against a fresh dispatcher.
func Run(sc *Scenario) (*Result, error) {
	ctx := context.Background()

	clues, err := puzzle.ParseGrid(sc.Givens)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: givens: %w", sc.Name, err)
	}
	var solution board.Grid
	if sc.Solution != "" {
		if solution, err = puzzle.ParseGrid(sc.Solution); err != nil {
			return nil, fmt.Errorf("scenario %q: solution: %w", sc.Name, err)
		}
	} else {
		if solution, _, err = puzzle.Solve(ctx, clues); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}

	b := board.New()
	if err := b.Load(clues, solution); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	d := game.NewDispatcher(game.NewState(b))
	journal := &memJournal{}
	d.SetJournal(journal)
	km := keymap.Default()

	// Lay out all 81 cells before the first input step, the way the
	// rendering collaborator would after its first frame.
	for id := board.ID(0); id < board.Cells; id++ {
		d.Enqueue(game.Event{Type: game.EventTypeGeometry, Geometry: &game.GeometryEvent{
			Cell: id,
			Box:  unitBox(id),
		}})
	}
	if err := d.ProcessTick(); err != nil {
		return nil, fmt.Errorf("scenario %q: layout: %w", sc.Name, err)
	}

	result := &Result{State: d.State()}
	for i, step := range sc.Steps {
		desc, err := enqueueStep(d, km, step)
		if err != nil {
			return nil, fmt.Errorf("scenario %q step %d: %w", sc.Name, i+1, err)
		}
		if err := d.ProcessTick(); err != nil {
			return nil, fmt.Errorf("scenario %q step %d (%s): %w", sc.Name, i+1, desc, err)
		}
		result.Trace = append(result.Trace, fmt.Sprintf("%2d %-24s mode=%s selected=%d",
			i+1, desc, d.State().Mode(), d.State().SelectionSize()))
	}

	result.Journal = journal.entries
	return result, nil
}

// enqueueStep translates one scenario step into dispatcher events and
// returns a trace description.
func enqueueStep(d *game.Dispatcher, km *keymap.Keymap, step Step) (string, error) {
	if step.Click != nil {
		c := step.Click
		pos := index.Point{X: -100, Y: -100}
		desc := "click outside"
		if !c.Outside {
			pos = centerOf(board.IDAt(c.Row, c.Col))
			desc = fmt.Sprintf("click r%dc%d", c.Row, c.Col)
		}
		if c.Multi {
			desc += " multi"
		}
		if c.Drag {
			desc += " drag"
		}
		d.Enqueue(game.Event{Type: game.EventTypePointer, Pointer: &game.PointerEvent{
			Pos:   pos,
			Multi: c.Multi,
			Drag:  c.Drag,
		}})
		return desc, nil
	}

	cmd, ok := km.Resolve(step.Key)
	if !ok {
		return "", fmt.Errorf("key %q not bound", step.Key)
	}
	d.Enqueue(game.Event{Type: game.EventTypeCommand, Command: &cmd})
	return fmt.Sprintf("key %s", step.Key), nil
}

// Check verifies the scenario's expectations against the final state.
// A scenario without an expect block always passes.
func (r *Result) Check(sc *Scenario) error {
	if sc.Expect == nil {
		return nil
	}
	e := sc.Expect

	if e.Mode != "" {
		want, err := game.ParseInputMode(e.Mode)
		if err != nil {
			return fmt.Errorf("scenario %q: expect: %w", sc.Name, err)
		}
		if got := r.State.Mode(); got != want {
			return fmt.Errorf("scenario %q: mode = %s, want %s", sc.Name, got, want)
		}
	}

	if e.Selected != nil {
		want := make([]board.ID, 0, len(e.Selected))
		for _, coord := range e.Selected {
			id, err := parseCoord(coord)
			if err != nil {
				return fmt.Errorf("scenario %q: expect: %w", sc.Name, err)
			}
			want = append(want, id)
		}
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		got := r.State.Selected()
		if !equalIDs(got, want) {
			return fmt.Errorf("scenario %q: selected = %s, want %s",
				sc.Name, formatIDs(got), formatIDs(want))
		}
	}

	for coord, token := range e.Cells {
		id, err := parseCoord(coord)
		if err != nil {
			return fmt.Errorf("scenario %q: expect: %w", sc.Name, err)
		}
		if got := ValueToken(r.State.Board().Cell(id).Value); got != token {
			return fmt.Errorf("scenario %q: cell %s = %q, want %q", sc.Name, coord, got, token)
		}
	}
	return nil
}

// ValueToken renders a cell value in the scenario token format:
// "." empty, "5" filled, "c13", "k79", "c1k9" for marks.
func ValueToken(v cell.Value) string {
	switch v := v.(type) {
	case cell.Filled:
		return string('0' + rune(v))
	case cell.Marked:
		var sb strings.Builder
		if !v.Center.IsEmpty() {
			sb.WriteByte('c')
			sb.WriteString(v.Center.String())
		}
		if !v.Corner.IsEmpty() {
			sb.WriteByte('k')
			sb.WriteString(v.Corner.String())
		}
		return sb.String()
	default:
		return "."
	}
}

// unitBox lays cell id out on a unit grid: column along X, row along
// Y, one square per cell.
func unitBox(id board.ID) index.BoundingBox {
	x := float64(int(id) % board.Size)
	y := float64(int(id) / board.Size)
	return index.BoundingBox{
		BottomLeft: index.Point{X: x, Y: y},
		TopRight:   index.Point{X: x + 1, Y: y + 1},
	}
}

func centerOf(id board.ID) index.Point {
	box := unitBox(id)
	return index.Point{
		X: (box.BottomLeft.X + box.TopRight.X) / 2,
		Y: (box.BottomLeft.Y + box.TopRight.Y) / 2,
	}
}

// parseCoord converts "r4c5" to a cell ID.
func parseCoord(s string) (board.ID, error) {
	var row, col uint8
	if _, err := fmt.Sscanf(s, "r%dc%d", &row, &col); err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	if row < 1 || row > board.Size || col < 1 || col > board.Size {
		return 0, fmt.Errorf("coordinate %q out of range", s)
	}
	return board.IDAt(row, col), nil
}

func equalIDs(a, b []board.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatIDs(ids []board.ID) string {
	if len(ids) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("r%dc%d", int(id)/board.Size+1, int(id)%board.Size+1)
	}
	return strings.Join(parts, " ")
}
