package store

import (
	"fmt"
	"strings"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
)

// Board snapshots are 81 comma-separated cell tokens in row-major
// order. Fixedness is not part of the snapshot; it is re-derived from
// the session's clue grid on load.
//
//	"."      empty
//	"5"      filled digit
//	"c137"   center marks 1,3,7
//	"k28"    corner marks 2,8
//	"c1k28"  both mark sets
func encodeBoard(b *board.Board) string {
	tokens := make([]string, 0, board.Cells)
	b.Each(func(_ board.ID, c *board.Cell) {
		tokens = append(tokens, encodeValue(c.Value))
	})
	return strings.Join(tokens, ",")
}

func encodeValue(v cell.Value) string {
	switch v := v.(type) {
	case cell.Filled:
		return fmt.Sprintf("%d", uint8(v))
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

// decodeBoard applies a snapshot's values onto a board that has
// already been seeded from the session's clue and solution grids.
// Fixed cells must round-trip unchanged; a snapshot that disagrees
// with a given is corrupt.
func decodeBoard(b *board.Board, snapshot string) error {
	tokens := strings.Split(snapshot, ",")
	if len(tokens) != board.Cells {
		return fmt.Errorf("board snapshot has %d cells, want %d", len(tokens), board.Cells)
	}
	for i, tok := range tokens {
		v, err := decodeValue(tok)
		if err != nil {
			return fmt.Errorf("board snapshot cell %d: %w", i, err)
		}
		c := b.Cell(board.ID(i))
		if c.Fixed {
			if v != c.Value {
				return fmt.Errorf("board snapshot cell %d: token %q contradicts given", i, tok)
			}
			continue
		}
		c.Value = v
	}
	return nil
}

func decodeValue(tok string) (cell.Value, error) {
	if tok == "." {
		return cell.Empty{}, nil
	}
	if len(tok) == 1 && tok[0] >= '1' && tok[0] <= '9' {
		return cell.Filled(tok[0] - '0'), nil
	}

	var m cell.Marked
	var set *cell.Marks
	for i := 0; i < len(tok); i++ {
		switch ch := tok[i]; {
		case ch == 'c':
			set = &m.Center
		case ch == 'k':
			set = &m.Corner
		case ch >= '1' && ch <= '9':
			if set == nil {
				return nil, fmt.Errorf("invalid token %q", tok)
			}
			*set = set.Toggle(ch - '0')
		default:
			return nil, fmt.Errorf("invalid token %q", tok)
		}
	}
	if m.Center.IsEmpty() && m.Corner.IsEmpty() {
		return nil, fmt.Errorf("invalid token %q", tok)
	}
	return m, nil
}
