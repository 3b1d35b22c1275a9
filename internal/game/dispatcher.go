package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/index"
	"github.com/pencilmark/pencilmark/internal/keymap"
)

// EventType discriminates the raw input event union.
type EventType int

const (
	// EventTypeGeometry reports a cell's new bounding box.
	EventTypeGeometry EventType = iota
	// EventTypePointer is a raw pointer press/drag position.
	EventTypePointer
	// EventTypeCommand is a resolved keyboard command.
	EventTypeCommand
)

// Event is one raw input event. Exactly one of the payload fields is
// set, according to Type.
type Event struct {
	Type     EventType
	Geometry *GeometryEvent
	Pointer  *PointerEvent
	Command  *keymap.Command
}

// GeometryEvent carries a cell's current on-screen box. The rendering
// collaborator sends one whenever a cell's geometry changes, not every
// frame.
type GeometryEvent struct {
	Cell board.ID
	Box  index.BoundingBox
}

// PointerEvent is a pointer position in board-local coordinates plus
// its modifier state. The dispatcher resolves it against the spatial
// index during the tick.
type PointerEvent struct {
	Pos   index.Point
	Multi bool
	Drag  bool
}

// Journal receives every applied input event, stamped with the
// session clock. The store package implements it over SQLite; a nil
// journal disables recording.
type Journal interface {
	Record(e JournalEntry) error
}

// JournalEntry is one replayable input event. Clicks are recorded with
// their resolved target so replay does not depend on geometry.
type JournalEntry struct {
	Seq   int64
	Kind  string
	Digit uint8
	Cell  int // resolved click target; -1 for a click outside the board
	Multi bool
	Drag  bool
}

// Journal entry kinds.
const (
	JournalClick      = "click"
	JournalDigit      = "digit"
	JournalErase      = "erase"
	JournalSelectAll  = "select_all"
	JournalModeFill   = "mode_fill"
	JournalModeCenter = "mode_center"
	JournalModeCorner = "mode_corner"
	JournalReset      = "reset"
	JournalReveal     = "reveal"
)

// Dispatcher owns the per-tick event pipeline: geometry upserts run
// first so the spatial index is current, then pointer and command
// events apply in arrival order. Board state is mutated only from
// here.
type Dispatcher struct {
	state   *State
	index   *index.Index
	clock   *Clock
	journal Journal
	pending []Event
}

// NewDispatcher creates a dispatcher around a state, with a fresh
// spatial index and clock.
func NewDispatcher(state *State) *Dispatcher {
	return &Dispatcher{
		state: state,
		index: index.New(),
		clock: NewClock(),
	}
}

// NewDispatcherAt is NewDispatcher with the clock resumed at seq.
// Used when continuing a persisted session, so journal sequence
// numbers keep ascending across restarts.
func NewDispatcherAt(state *State, seq int64) *Dispatcher {
	d := NewDispatcher(state)
	d.clock = NewClockAt(seq)
	return d
}

// State returns the dispatched state (read access for renderers).
func (d *Dispatcher) State() *State {
	return d.state
}

// Index returns the spatial index. The rendering collaborator may
// query it, but geometry updates should go through Enqueue so that
// tick ordering holds.
func (d *Dispatcher) Index() *index.Index {
	return d.index
}

// Clock returns the session's logical clock.
func (d *Dispatcher) Clock() *Clock {
	return d.clock
}

// SetJournal attaches a journal sink. Pass nil to stop recording.
func (d *Dispatcher) SetJournal(j Journal) {
	d.journal = j
}

// Enqueue adds a raw event to the current tick's batch.
func (d *Dispatcher) Enqueue(ev Event) {
	d.pending = append(d.pending, ev)
}

// PendingLen returns the number of events waiting for the next tick.
func (d *Dispatcher) PendingLen() int {
	return len(d.pending)
}

// ProcessTick drains the batch. Geometry events apply first (the index
// must be current before any click resolves), then the remaining
// events in arrival order.
//
// An error in one event is fatal only to that event: processing
// continues, and all errors are joined into the return value so the
// caller sees every violation. The batch always runs to completion.
func (d *Dispatcher) ProcessTick() error {
	batch := d.pending
	d.pending = nil

	var errs []error
	for _, ev := range batch {
		if ev.Type == EventTypeGeometry {
			if err := d.processEvent(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, ev := range batch {
		if ev.Type == EventTypeGeometry {
			continue
		}
		if err := d.processEvent(ev); err != nil {
			slog.Error("event dispatch failed", "error", err, "type", ev.Type)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// processEvent routes one event to its handler.
func (d *Dispatcher) processEvent(ev Event) error {
	switch ev.Type {
	case EventTypeGeometry:
		if ev.Geometry == nil {
			return fmt.Errorf("geometry event missing payload")
		}
		if !board.Valid(ev.Geometry.Cell) {
			return NewUnknownCellError(ev.Geometry.Cell)
		}
		d.index.Upsert(ev.Geometry.Cell, ev.Geometry.Box)
		return nil

	case EventTypePointer:
		if ev.Pointer == nil {
			return fmt.Errorf("pointer event missing payload")
		}
		return d.processPointer(ev.Pointer)

	case EventTypeCommand:
		if ev.Command == nil {
			return fmt.Errorf("command event missing payload")
		}
		return d.processCommand(*ev.Command)

	default:
		return fmt.Errorf("unknown event type: %d", ev.Type)
	}
}

// processPointer resolves a pointer position through the index and
// applies the resulting click.
func (d *Dispatcher) processPointer(p *PointerEvent) error {
	click := CellClick{Multi: p.Multi, Drag: p.Drag}
	journalCell := -1
	if id, ok := d.index.Lookup(p.Pos); ok {
		click.Target = &id
		journalCell = int(id)
	}

	if err := d.state.HandleClick(click); err != nil {
		return err
	}

	slog.Debug("click dispatched",
		"cell", journalCell,
		"multi", p.Multi,
		"drag", p.Drag,
		"selection", d.state.SelectionSize(),
	)

	return d.record(JournalEntry{
		Kind:  JournalClick,
		Cell:  journalCell,
		Multi: p.Multi,
		Drag:  p.Drag,
	})
}

// processCommand applies a keyboard command to the state.
//
// KindNewPuzzle is deliberately not handled here: dealing a new puzzle
// is a session-level action owned by the host (it needs a puzzle
// provider and usually a fresh journal), exactly like quitting.
func (d *Dispatcher) processCommand(cmd keymap.Command) error {
	switch cmd.Kind {
	case keymap.KindDigit:
		if err := d.state.ApplyDigit(cmd.Digit); err != nil {
			return err
		}
		return d.record(JournalEntry{Kind: JournalDigit, Digit: cmd.Digit})

	case keymap.KindErase:
		d.state.EraseSelected()
		return d.record(JournalEntry{Kind: JournalErase})

	case keymap.KindSelectAll:
		d.state.SelectAll()
		return d.record(JournalEntry{Kind: JournalSelectAll})

	case keymap.KindModeFill:
		d.state.SetMode(ModeFill)
		return d.record(JournalEntry{Kind: JournalModeFill})

	case keymap.KindModeCenter:
		d.state.SetMode(ModeCenterMark)
		return d.record(JournalEntry{Kind: JournalModeCenter})

	case keymap.KindModeCorner:
		d.state.SetMode(ModeCornerMark)
		return d.record(JournalEntry{Kind: JournalModeCorner})

	case keymap.KindResetPuzzle:
		d.state.ResetPuzzle()
		return d.record(JournalEntry{Kind: JournalReset})

	case keymap.KindReveal:
		d.state.RevealSolution()
		return d.record(JournalEntry{Kind: JournalReveal})

	case keymap.KindNewPuzzle:
		slog.Debug("new-puzzle command ignored by dispatcher; host owns re-seeding")
		return nil

	default:
		return fmt.Errorf("unknown command kind: %d", cmd.Kind)
	}
}

// record stamps and journals an applied event. The clock advances even
// without a journal so that seq numbers are stable whether or not a
// session is being recorded.
func (d *Dispatcher) record(e JournalEntry) error {
	e.Seq = d.clock.Next()
	if d.journal == nil {
		return nil
	}
	if err := d.journal.Record(e); err != nil {
		return &DispatchError{
			Code:    ErrCodeJournal,
			Message: fmt.Sprintf("record %s event: %v", e.Kind, err),
		}
	}
	return nil
}
