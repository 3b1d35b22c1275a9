package cell

// Value is a sealed interface representing what the player has written
// into a cell. Only Empty, Filled, and Marked implement it.
//
// All three variants are comparable value types, so == on two Values is
// full-content equality: two Filled cells match only on the same digit,
// and two Marked cells match only when both mark sets are identical.
// Match-select (double click) relies on this.
type Value interface {
	cellValue() // Sealed - only these types implement it
}

// Empty means the player has entered nothing into the cell.
type Empty struct{}

func (Empty) cellValue() {}

// Filled is the player's committed answer for the cell.
// The digit is always in 1..9.
type Filled uint8

func (Filled) cellValue() {}

// Marked holds candidate notes for a cell: center marks are possible
// values of the cell itself, corner marks are positional notes within
// the cell's 3x3 square.
//
// INVARIANT: a reachable Marked never has both sets empty. Every
// transition that can drain the sets normalizes Marked{}, {} back to
// Empty (the cleanup rule), so an unobservable empty-marked state
// cannot persist.
type Marked struct {
	Center Marks
	Corner Marks
}

func (Marked) cellValue() {}

// IsValidDigit reports whether d is a legal Sudoku digit.
func IsValidDigit(d uint8) bool {
	return d >= 1 && d <= 9
}

// ApplyFill returns the value after pressing digit d in fill mode.
//
// Transitions:
//   - Empty -> Filled(d)
//   - Marked -> Filled(d), marks are discarded
//   - Filled(d) -> Empty (same digit toggles the cell clear)
//   - Filled(other) -> Filled(d) (overwrite)
//
// Pure function; d must be a valid digit (caller-checked).
func ApplyFill(old Value, d uint8) Value {
	switch v := old.(type) {
	case Filled:
		if uint8(v) == d {
			return Empty{}
		}
		return Filled(d)
	default:
		// Empty and Marked both become the pressed digit
		return Filled(d)
	}
}

// ApplyCenterMark returns the value after pressing digit d in
// center-mark mode.
//
// Transitions:
//   - Empty -> Marked({d}, {})
//   - Filled -> Marked({d}, {}); entering mark mode always discards a
//     prior fill, deliberately asymmetric with ApplyFill
//   - Marked -> toggle d in the center set
//
// The result passes through the cleanup rule.
func ApplyCenterMark(old Value, d uint8) Value {
	switch v := old.(type) {
	case Marked:
		return normalize(Marked{Center: v.Center.Toggle(d), Corner: v.Corner})
	default:
		return Marked{Center: NewMarks(d)}
	}
}

// ApplyCornerMark is ApplyCenterMark's mirror for the corner set.
func ApplyCornerMark(old Value, d uint8) Value {
	switch v := old.(type) {
	case Marked:
		return normalize(Marked{Center: v.Center, Corner: v.Corner.Toggle(d)})
	default:
		return Marked{Corner: NewMarks(d)}
	}
}

// normalize applies the cleanup rule: a Marked value whose both sets
// are empty collapses to Empty.
func normalize(v Marked) Value {
	if v.Center.IsEmpty() && v.Corner.IsEmpty() {
		return Empty{}
	}
	return v
}

// String renders the value the way the display collaborator shows it:
// the digit for a fill, the ascending center marks for a marked cell,
// nothing for an empty cell.
func String(v Value) string {
	switch val := v.(type) {
	case Filled:
		return string('0' + rune(val))
	case Marked:
		return val.Center.String()
	default:
		return ""
	}
}
