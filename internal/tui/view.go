package tui

import (
	"fmt"
	"strings"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
	"github.com/pencilmark/pencilmark/internal/game"
)

// View renders the board at the view origin so that cell geometry in
// the spatial index matches screen coordinates exactly. Status and
// help lines go below the board, never above it.
func (m *Model) View() string {
	st := m.dispatcher.State()
	b := st.Board()

	var sb strings.Builder
	for r := 0; r < board.Size; r++ {
		if r > 0 && r%3 == 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < board.Size; c++ {
			if c > 0 && c%3 == 0 {
				sb.WriteString(strings.Repeat(" ", gutterCols))
			}
			id := board.IDAt(uint8(r+1), uint8(c+1))
			sb.WriteString(m.renderCell(st, id, b.Cell(id)))
		}
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	sb.WriteString(m.statusLine(st))
	sb.WriteByte('\n')
	sb.WriteString(m.theme.Help.Render(
		"1-9 enter · q/w/e fill/center/corner · del erase · ctrl+a all · n new · r reset · s solve · esc quit"))
	sb.WriteByte('\n')
	return sb.String()
}

func (m *Model) renderCell(st *game.State, id board.ID, c *board.Cell) string {
	text := fmt.Sprintf("%-*s", cellWidth, " "+cellText(c.Value))
	if len(text) > cellWidth {
		text = text[:cellWidth]
	}

	style := m.theme.Entry
	switch c.Value.(type) {
	case cell.Marked:
		style = m.theme.Marks
	default:
		if c.Fixed {
			style = m.theme.Fixed
		}
	}
	if st.IsSelected(id) {
		style = style.Background(m.theme.Selected.GetBackground())
	}
	return style.Render(text)
}

// cellText is the compact cell rendering: the digit for a fill, the
// center marks (corner marks as fallback) for a marked cell.
func cellText(v cell.Value) string {
	switch v := v.(type) {
	case cell.Filled:
		return string('0' + rune(v))
	case cell.Marked:
		if !v.Center.IsEmpty() {
			return v.Center.String()
		}
		return v.Corner.String()
	default:
		return "."
	}
}

func (m *Model) statusLine(st *game.State) string {
	if m.status != "" {
		return m.theme.Status.Render(m.status)
	}
	if st.Board().Solved() {
		return m.theme.Solved.Render("solved!")
	}
	return m.theme.Status.Render(fmt.Sprintf("mode: %s · %s · %d selected",
		st.Mode(), m.difficulty, st.SelectionSize()))
}
