package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pencilmark/pencilmark/internal/cell"
	"github.com/pencilmark/pencilmark/internal/game"
)

func loadScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	sc, err := LoadScenario(filepath.Join("testdata", name+".yaml"))
	require.NoError(t, err)
	return sc
}

func TestScenarioGolden(t *testing.T) {
	for _, name := range []string{"match-select", "mark-lifecycle", "drag-erase"} {
		t.Run(name, func(t *testing.T) {
			sc := loadScenario(t, name)
			require.NoError(t, RunWithGolden(t, sc))
		})
	}
}

func TestRun_JournalMatchesSteps(t *testing.T) {
	sc := loadScenario(t, "drag-erase")
	result, err := Run(sc)
	require.NoError(t, err)

	require.Len(t, result.Journal, len(sc.Steps))
	for i, e := range result.Journal {
		assert.Equal(t, int64(i+1), e.Seq)
	}
	assert.Equal(t, game.JournalClick, result.Journal[0].Kind)
	assert.True(t, result.Journal[0].Drag)
	assert.Equal(t, game.JournalDigit, result.Journal[3].Kind)
	assert.Equal(t, game.JournalErase, result.Journal[4].Kind)
	assert.Equal(t, -1, result.Journal[5].Cell)
}

func TestParseScenario_RejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
givens: "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
stepz: []
`))
	assert.Error(t, err)
}

func TestParseScenario_StepValidation(t *testing.T) {
	cases := map[string]string{
		"both click and key": `
name: bad
givens: "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
steps:
  - click: {row: 1, col: 1}
    key: "1"
`,
		"neither": `
name: bad
givens: "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
steps:
  - {}
`,
		"row out of range": `
name: bad
givens: "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
steps:
  - click: {row: 10, col: 1}
`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScenario([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestRun_SolvesWhenSolutionOmitted(t *testing.T) {
	sc, err := ParseScenario([]byte(`
name: no-solution
givens: "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
steps:
  - key: "s"
`))
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.State.Board().Solved(),
		"reveal must complete the board from the computed solution")
}

func TestRun_UnboundKey(t *testing.T) {
	sc, err := ParseScenario([]byte(`
name: unbound
givens: "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
steps:
  - key: "f12"
`))
	require.NoError(t, err)

	_, err = Run(sc)
	assert.ErrorContains(t, err, "not bound")
}

func TestValueToken(t *testing.T) {
	assert.Equal(t, ".", ValueToken(cell.Empty{}))
	assert.Equal(t, "8", ValueToken(cell.Filled(8)))
	assert.Equal(t, "c15k9", ValueToken(cell.Marked{
		Center: cell.NewMarks(1).Toggle(5),
		Corner: cell.NewMarks(9),
	}))
}

func TestResultCheck_DetectsMismatch(t *testing.T) {
	sc := loadScenario(t, "mark-lifecycle")
	result, err := Run(sc)
	require.NoError(t, err)
	require.NoError(t, result.Check(sc))

	sc.Expect.Cells["r3c1"] = "c9"
	err = result.Check(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `want "c9"`)
}
