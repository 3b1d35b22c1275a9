package game

import (
	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
)

// ApplyDigit runs the mode-appropriate transition function for every
// selected cell.
//
// Fixed cells are skipped entirely; one fixed cell never blocks the
// rest of the selection. An empty selection is a valid no-op. A digit
// outside 1..9 is an invariant violation.
func (s *State) ApplyDigit(d uint8) error {
	if !cell.IsValidDigit(d) {
		return NewInvalidDigitError(d)
	}

	var apply func(cell.Value, uint8) cell.Value
	switch s.mode {
	case ModeCenterMark:
		apply = cell.ApplyCenterMark
	case ModeCornerMark:
		apply = cell.ApplyCornerMark
	default:
		apply = cell.ApplyFill
	}

	for _, id := range s.Selected() {
		c := s.board.Cell(id)
		if c.Fixed {
			continue
		}
		c.Value = apply(c.Value, d)
	}
	return nil
}

// EraseSelected hard-resets every selected non-fixed cell to Empty.
// Erase bypasses the transition functions: it is never a toggle.
func (s *State) EraseSelected() {
	for _, id := range s.Selected() {
		c := s.board.Cell(id)
		if c.Fixed {
			continue
		}
		c.Value = cell.Empty{}
	}
}

// FixedSelected returns the selected cells that are puzzle givens.
// Handy for UIs that want to flash blocked input.
func (s *State) FixedSelected() []board.ID {
	var out []board.ID
	for _, id := range s.Selected() {
		if s.board.Cell(id).Fixed {
			out = append(out, id)
		}
	}
	return out
}
