package game

import "github.com/pencilmark/pencilmark/internal/board"

// CellClick is a resolved pointer event: the spatial index has already
// been consulted, so Target is either the clicked cell or nil for a
// click that landed outside the board.
type CellClick struct {
	// Target is the clicked cell, nil when the click missed the board.
	Target *board.ID
	// Multi is true when the additive/toggle modifier was held.
	Multi bool
	// Drag is true when this event continues an in-progress drag
	// rather than starting a fresh press.
	Drag bool
}

// HandleClick mutates the selection according to a click event.
//
// Rules, in priority order:
//  1. No target: clear the whole selection, regardless of modifiers.
//  2. Drag: add the target to the selection. Drags only ever grow the
//     selection, which is what makes paint-style selection work.
//  3. Multi (no drag): toggle the target's membership.
//  4. Plain click: if the target was already the sole selection,
//     match-select every cell whose value equals the target's value
//     (the double-click gesture); otherwise select just the target.
//
// Match-select compares full values, so two identically-marked cells
// match each other but a fill never matches a marked cell.
func (s *State) HandleClick(click CellClick) error {
	if click.Target == nil {
		s.ClearSelection()
		return nil
	}

	id := *click.Target
	if !board.Valid(id) {
		return NewUnknownCellError(id)
	}

	if click.Drag {
		s.selectCell(id)
		return nil
	}

	if click.Multi {
		if s.IsSelected(id) {
			s.deselectCell(id)
		} else {
			s.selectCell(id)
		}
		return nil
	}

	wasSole := s.IsSelected(id) && s.SelectionSize() <= 1
	s.ClearSelection()

	if wasSole {
		// Double click on a lone selected cell: select everything with
		// a matching value. Sealed comparable variants make == exact.
		want := s.valueAt(id)
		s.board.Each(func(other board.ID, c *board.Cell) {
			if c.Value == want {
				s.selectCell(other)
			}
		})
		return nil
	}

	s.selectCell(id)
	return nil
}
