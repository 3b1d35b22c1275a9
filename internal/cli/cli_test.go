package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClues    = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	testSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

// execute runs the CLI with a fresh root command and captured output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "solve", testClues)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSolve_Text(t *testing.T) {
	stdout, _, err := execute(t, "solve", testClues)
	require.NoError(t, err)
	assert.Equal(t, testSolution, strings.TrimSpace(stdout))
}

func TestSolve_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "solve", "--check-unique", testClues)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testSolution, data["solution"])
	assert.Equal(t, true, data["unique"])
}

func TestSolve_InvalidGrid(t *testing.T) {
	_, _, err := execute(t, "solve", "not-a-grid")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSolve_Unsolvable(t *testing.T) {
	bad := "55" + testClues[2:]
	_, _, err := execute(t, "solve", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSolve_NotUnique(t *testing.T) {
	empty := strings.Repeat(".", 81)
	_, _, err := execute(t, "solve", "--check-unique", empty)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "unique")
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _, err := execute(t, "generate", "--seed", "42", "-d", "easy")
	require.NoError(t, err)
	b, _, err := execute(t, "generate", "--seed", "42", "-d", "easy")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, strings.TrimSpace(a), 81)
}

func TestGenerate_SolutionSolvesGivens(t *testing.T) {
	stdout, _, err := execute(t, "generate", "--seed", "7", "-d", "easy", "--solution")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)

	solved, _, err := execute(t, "solve", lines[0])
	require.NoError(t, err)
	assert.Equal(t, lines[1], strings.TrimSpace(solved))
}

func TestGenerate_BadFlags(t *testing.T) {
	_, _, err := execute(t, "generate", "-d", "impossible")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "generate", "-n", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPacks_Show(t *testing.T) {
	stdout, _, err := execute(t, "packs", "show", filepath.Join("..", "puzzlepack", "testdata", "classic"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Classic Starters (2 puzzles)")
	assert.Contains(t, stdout, "wikipedia")
}

func TestPacks_ShowMissing(t *testing.T) {
	_, _, err := execute(t, "packs", "show", "no-such-dir")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSessions_EmptyList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sessions.db")
	stdout, _, err := execute(t, "--db", db, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no saved sessions")
}

func TestSessions_DeleteMissing(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sessions.db")
	_, _, err := execute(t, "--db", db, "sessions", "delete", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplay_MissingSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sessions.db")
	_, _, err := execute(t, "--db", db, "replay", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	wrapped := WrapExitError(ExitFailure, "outer", assert.AnError)
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, assert.AnError)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.Error("PACK_SCHEMA", "bad pack", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "PACK_SCHEMA", resp.Error.Code)
}
