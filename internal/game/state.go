// Package game owns the interactive state of a Sudoku session: which
// cells are selected, which input mode digit keys use, and the
// dispatcher that turns pointer and keyboard events into board
// mutations.
//
// All mutation is single-threaded and synchronous. The host polls its
// input sources once per logic tick, enqueues the resulting events,
// and calls ProcessTick; the rendering collaborator reads the state
// only after the tick settles.
package game

import (
	"fmt"
	"sort"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
)

// InputMode selects which transition function digit input uses.
// It is process-wide: one mode for the whole board, changed only by
// explicit mode-switch input and read by every digit event.
type InputMode int

const (
	// ModeFill commits digits as answers.
	ModeFill InputMode = iota
	// ModeCenterMark toggles center candidate marks.
	ModeCenterMark
	// ModeCornerMark toggles corner candidate marks.
	ModeCornerMark
)

// String returns the stable name used in config, journals, and logs.
func (m InputMode) String() string {
	switch m {
	case ModeCenterMark:
		return "center"
	case ModeCornerMark:
		return "corner"
	default:
		return "fill"
	}
}

// ParseInputMode is the inverse of String.
func ParseInputMode(s string) (InputMode, error) {
	switch s {
	case "fill":
		return ModeFill, nil
	case "center":
		return ModeCenterMark, nil
	case "corner":
		return ModeCornerMark, nil
	default:
		return ModeFill, fmt.Errorf("unknown input mode %q", s)
	}
}

// State is the board plus everything transient around it: the current
// selection and the input mode. It is owned by exactly one caller; no
// internal locking.
type State struct {
	board    *board.Board
	selected map[board.ID]struct{}
	mode     InputMode
}

// NewState wraps a board in a fresh interactive state: empty
// selection, fill mode.
func NewState(b *board.Board) *State {
	return &State{
		board:    b,
		selected: make(map[board.ID]struct{}),
		mode:     ModeFill,
	}
}

// Board exposes the underlying board for reading.
func (s *State) Board() *board.Board {
	return s.board
}

// Mode returns the current input mode.
func (s *State) Mode() InputMode {
	return s.mode
}

// SetMode switches the input mode. Takes effect on the next digit
// input, never retroactively.
func (s *State) SetMode(m InputMode) {
	s.mode = m
}

// IsSelected reports whether the cell is part of the active selection.
func (s *State) IsSelected(id board.ID) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectionSize returns the number of selected cells.
func (s *State) SelectionSize() int {
	return len(s.selected)
}

// Selected returns the selected cell IDs in ascending order, so that
// per-cell processing and journaling stay deterministic.
func (s *State) Selected() []board.ID {
	ids := make([]board.ID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ClearSelection deselects every cell.
func (s *State) ClearSelection() {
	clear(s.selected)
}

// SelectAll selects every cell unconditionally.
func (s *State) SelectAll() {
	for i := 0; i < board.Cells; i++ {
		s.selected[board.ID(i)] = struct{}{}
	}
}

func (s *State) selectCell(id board.ID) {
	s.selected[id] = struct{}{}
}

func (s *State) deselectCell(id board.ID) {
	delete(s.selected, id)
}

// NewPuzzle re-seeds the board from a fresh clue/solution pair and
// clears the selection. The input mode is left alone.
func (s *State) NewPuzzle(clues, solution board.Grid) error {
	if err := s.board.Load(clues, solution); err != nil {
		return fmt.Errorf("new puzzle: %w", err)
	}
	s.ClearSelection()
	return nil
}

// ResetPuzzle clears all player entries back to the givens and drops
// the selection.
func (s *State) ResetPuzzle() {
	s.board.Reset()
	s.ClearSelection()
}

// RevealSolution overwrites every cell from the solution grid.
func (s *State) RevealSolution() {
	s.board.Reveal()
}

// valueAt is a small helper for click handling and tests.
func (s *State) valueAt(id board.ID) cell.Value {
	return s.board.Cell(id).Value
}
