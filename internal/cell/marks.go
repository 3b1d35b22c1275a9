package cell

import "strings"

// Marks is a set of candidate digits 1..9, stored as a bitmask.
// Bit n-1 is set when digit n is marked. Set semantics make duplicates
// impossible; Digits and String always report ascending order.
//
// The zero value is the empty set. Marks is comparable, which keeps
// the whole Value union comparable.
type Marks uint16

// NewMarks creates a set containing only d.
func NewMarks(d uint8) Marks {
	return Marks(1) << (d - 1)
}

// Toggle removes d if present, otherwise inserts it.
func (m Marks) Toggle(d uint8) Marks {
	return m ^ (Marks(1) << (d - 1))
}

// Has reports whether d is in the set.
func (m Marks) Has(d uint8) bool {
	return m&(Marks(1)<<(d-1)) != 0
}

// IsEmpty reports whether no digits are marked.
func (m Marks) IsEmpty() bool {
	return m == 0
}

// Count returns the number of marked digits.
func (m Marks) Count() int {
	n := 0
	for d := uint8(1); d <= 9; d++ {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// Digits returns the marked digits in ascending order.
func (m Marks) Digits() []uint8 {
	out := make([]uint8, 0, 9)
	for d := uint8(1); d <= 9; d++ {
		if m.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String concatenates the marked digits in ascending order, e.g. "137".
func (m Marks) String() string {
	var sb strings.Builder
	for d := uint8(1); d <= 9; d++ {
		if m.Has(d) {
			sb.WriteByte('0' + d)
		}
	}
	return sb.String()
}
