package game

import (
	"fmt"

	"github.com/pencilmark/pencilmark/internal/board"
)

// ApplyEntry replays one journal entry against the state. Entries
// carry resolved click targets, so replay needs no spatial index; a
// journal applied in seq order to a freshly dealt board reproduces the
// session exactly.
func (s *State) ApplyEntry(e JournalEntry) error {
	switch e.Kind {
	case JournalClick:
		click := CellClick{Multi: e.Multi, Drag: e.Drag}
		if e.Cell >= 0 {
			id := board.ID(e.Cell)
			click.Target = &id
		}
		return s.HandleClick(click)
	case JournalDigit:
		return s.ApplyDigit(e.Digit)
	case JournalErase:
		s.EraseSelected()
	case JournalSelectAll:
		s.SelectAll()
	case JournalModeFill:
		s.SetMode(ModeFill)
	case JournalModeCenter:
		s.SetMode(ModeCenterMark)
	case JournalModeCorner:
		s.SetMode(ModeCornerMark)
	case JournalReset:
		s.ResetPuzzle()
	case JournalReveal:
		s.RevealSolution()
	default:
		return fmt.Errorf("replay: unknown journal kind %q", e.Kind)
	}
	return nil
}
