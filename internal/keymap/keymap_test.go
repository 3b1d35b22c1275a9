package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_DigitKeys(t *testing.T) {
	km := Default()
	for d := uint8(1); d <= 9; d++ {
		key := string('0' + rune(d))

		cmd, ok := km.Resolve(key)
		require.True(t, ok, "top-row key %q must be bound", key)
		assert.Equal(t, Command{Kind: KindDigit, Digit: d}, cmd)

		cmd, ok = km.Resolve("kp" + key)
		require.True(t, ok, "keypad key %q must be bound", "kp"+key)
		assert.Equal(t, Command{Kind: KindDigit, Digit: d}, cmd)
	}
}

func TestDefault_CommandKeys(t *testing.T) {
	km := Default()
	cases := map[string]CommandKind{
		"delete":    KindErase,
		"backspace": KindErase,
		"ctrl+a":    KindSelectAll,
		"q":         KindModeFill,
		"w":         KindModeCenter,
		"e":         KindModeCorner,
		"n":         KindNewPuzzle,
		"r":         KindResetPuzzle,
		"s":         KindReveal,
	}
	for key, kind := range cases {
		cmd, ok := km.Resolve(key)
		require.True(t, ok, "key %q must be bound", key)
		assert.Equal(t, kind, cmd.Kind)
	}
}

func TestResolve_UnboundKey(t *testing.T) {
	_, ok := Default().Resolve("f12")
	assert.False(t, ok)
}

func TestParse_CustomLayout(t *testing.T) {
	km, err := Parse([]byte(`
digits:
  "a": 1
  "b": 2
erase: [x]
select_all: []
mode_fill: [f]
mode_center: [c]
mode_corner: [k]
new_puzzle: []
reset: []
reveal: []
`))
	require.NoError(t, err)

	cmd, ok := km.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, Command{Kind: KindDigit, Digit: 1}, cmd)

	cmd, ok = km.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, KindErase, cmd.Kind)

	_, ok = km.Resolve("1")
	assert.False(t, ok, "custom layouts fully replace the defaults")
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("digits: {\"1\": 1}\nerasse: [x]\n"))
	assert.Error(t, err, "typo'd field names must not be dropped silently")
}

func TestCompile_RejectsDuplicateKey(t *testing.T) {
	_, err := Compile(Config{
		Digits: map[string]uint8{"x": 1},
		Erase:  []string{"x"},
	})
	assert.ErrorContains(t, err, "bound twice")
}

func TestCompile_RejectsBadDigit(t *testing.T) {
	_, err := Compile(Config{Digits: map[string]uint8{"z": 10}})
	assert.ErrorContains(t, err, "out of range")
}
