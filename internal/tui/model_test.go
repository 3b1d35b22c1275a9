package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "delete":
		return tea.KeyMsg(tea.Key{Type: tea.KeyDelete})
	case "ctrl+a":
		return tea.KeyMsg(tea.Key{Type: tea.KeyCtrlA})
	default:
		return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func pressAt(id board.ID) tea.MouseMsg {
	x, y := cellOrigin(id)
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestUpdate_ClickThenDigit(t *testing.T) {
	m := testModel(t)
	target := board.IDAt(1, 3) // empty in the test puzzle

	m.Update(pressAt(target))
	assert.True(t, m.dispatcher.State().IsSelected(target))

	m.Update(keyMsg("4"))
	assert.Equal(t, cell.Filled(4), m.dispatcher.State().Board().Cell(target).Value)
}

func TestUpdate_DragPaintsSelection(t *testing.T) {
	m := testModel(t)
	a := board.IDAt(1, 3)
	b := board.IDAt(1, 4)

	m.Update(pressAt(a))
	move := pressAt(b)
	move.Action = tea.MouseActionMotion
	m.Update(move)

	st := m.dispatcher.State()
	assert.True(t, st.IsSelected(a), "drag must not drop the press target")
	assert.True(t, st.IsSelected(b))

	release := pressAt(b)
	release.Action = tea.MouseActionRelease
	m.Update(release)
	assert.False(t, m.dragging)

	// Motion after release is hover, not drag.
	hover := pressAt(board.IDAt(1, 6))
	hover.Action = tea.MouseActionMotion
	m.Update(hover)
	assert.False(t, st.IsSelected(board.IDAt(1, 6)))
}

func TestUpdate_ShiftClickToggles(t *testing.T) {
	m := testModel(t)
	a := board.IDAt(1, 3)
	b := board.IDAt(1, 4)

	m.Update(pressAt(a))
	multi := pressAt(b)
	multi.Shift = true
	m.Update(multi)
	st := m.dispatcher.State()
	assert.Equal(t, 2, st.SelectionSize())

	m.Update(multi)
	assert.Equal(t, []board.ID{a}, st.Selected())
}

func TestUpdate_ClickOutsideBoardClears(t *testing.T) {
	m := testModel(t)
	m.Update(pressAt(board.IDAt(1, 3)))
	require.Equal(t, 1, m.dispatcher.State().SelectionSize())

	m.Update(tea.MouseMsg{X: 200, Y: 200, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Zero(t, m.dispatcher.State().SelectionSize())
}

func TestUpdate_ModeKeys(t *testing.T) {
	m := testModel(t)
	m.Update(pressAt(board.IDAt(1, 3)))

	m.Update(keyMsg("w"))
	m.Update(keyMsg("2"))
	m.Update(keyMsg("6"))

	v, ok := m.dispatcher.State().Board().Cell(board.IDAt(1, 3)).Value.(cell.Marked)
	require.True(t, ok)
	assert.Equal(t, []uint8{2, 6}, v.Center.Digits())
}

func TestUpdate_EraseKey(t *testing.T) {
	m := testModel(t)
	target := board.IDAt(1, 3)
	m.Update(pressAt(target))
	m.Update(keyMsg("4"))
	m.Update(keyMsg("delete"))
	assert.Equal(t, cell.Value(cell.Empty{}), m.dispatcher.State().Board().Cell(target).Value)
}

func TestUpdate_UnboundKeyIsNoop(t *testing.T) {
	m := testModel(t)
	before := m.dispatcher.Clock().Current()
	m.Update(keyMsg("z"))
	assert.Equal(t, before, m.dispatcher.Clock().Current())
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_NewPuzzleKeyDealsFresh(t *testing.T) {
	m := testModel(t)
	m.seed = 100
	target := board.IDAt(1, 3)
	m.Update(pressAt(target))
	m.Update(keyMsg("4"))

	m.Update(keyMsg("n"))

	st := m.dispatcher.State()
	assert.Zero(t, st.SelectionSize(), "new deal clears the selection")
	assert.Zero(t, m.dispatcher.Clock().Current(), "new deal restarts the clock")
	assert.False(t, st.Board().Solved())
	assert.Contains(t, m.status, "new easy puzzle")
}

func TestUpdate_SolveKeyCompletes(t *testing.T) {
	m := testModel(t)
	m.Update(keyMsg("s"))
	assert.True(t, m.dispatcher.State().Board().Solved())
	assert.Contains(t, m.View(), "solved!")
}
