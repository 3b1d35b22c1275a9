package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/cell"
)

func TestEncodeValue(t *testing.T) {
	cases := []struct {
		value cell.Value
		want  string
	}{
		{cell.Empty{}, "."},
		{cell.Filled(7), "7"},
		{cell.Marked{Center: cell.NewMarks(1).Toggle(3).Toggle(7)}, "c137"},
		{cell.Marked{Corner: cell.NewMarks(2).Toggle(8)}, "k28"},
		{cell.Marked{Center: cell.NewMarks(1), Corner: cell.NewMarks(2).Toggle(8)}, "c1k28"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, encodeValue(tc.value))

		got, err := decodeValue(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.value, got)
	}
}

func TestDecodeValue_Invalid(t *testing.T) {
	for _, tok := range []string{"", "0", "x", "c", "k", "ck", "12", "c0"} {
		_, err := decodeValue(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestDecodeBoard_WrongLength(t *testing.T) {
	b := board.New()
	err := decodeBoard(b, ".,.,.")
	assert.ErrorContains(t, err, "3 cells")
}

func TestDecodeBoard_ContradictsGiven(t *testing.T) {
	clues, solution := testGrids(t)

	b := board.New()
	require.NoError(t, b.Load(clues, solution))

	tokens := strings.Split(encodeBoard(b), ",")
	tokens[0] = "1" // the given at r1c1 is 5
	err := decodeBoard(b, strings.Join(tokens, ","))
	assert.ErrorContains(t, err, "contradicts given")
}
