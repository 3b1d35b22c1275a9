// Package keymap turns physical key names into game commands.
//
// The mapping is configuration, not game logic: the dispatcher only
// ever sees Commands. Defaults follow the classic layout (digits on
// the top row and keypad, Q/W/E for input modes, Delete/Backspace to
// erase, Ctrl+A to select all) and can be replaced wholesale from a
// YAML file.
package keymap

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CommandKind enumerates everything a key press can mean to the game.
type CommandKind int

const (
	// KindDigit enters a digit into the selected cells (mode-dependent).
	KindDigit CommandKind = iota
	// KindErase clears the selected cells.
	KindErase
	// KindSelectAll selects every cell.
	KindSelectAll
	// KindModeFill switches digit input to fill mode.
	KindModeFill
	// KindModeCenter switches digit input to center-mark mode.
	KindModeCenter
	// KindModeCorner switches digit input to corner-mark mode.
	KindModeCorner
	// KindNewPuzzle deals a fresh puzzle.
	KindNewPuzzle
	// KindResetPuzzle clears all player entries back to the givens.
	KindResetPuzzle
	// KindReveal fills the whole board from the solution.
	KindReveal
)

// Command is a resolved key binding. Digit is set only for KindDigit.
type Command struct {
	Kind  CommandKind
	Digit uint8
}

// Keymap resolves key names to commands.
type Keymap struct {
	bindings map[string]Command
}

// Config is the YAML shape of a keymap file. Each list maps one
// command to the keys that trigger it; Digits maps key name to digit.
type Config struct {
	Digits     map[string]uint8 `yaml:"digits"`
	Erase      []string         `yaml:"erase"`
	SelectAll  []string         `yaml:"select_all"`
	ModeFill   []string         `yaml:"mode_fill"`
	ModeCenter []string         `yaml:"mode_center"`
	ModeCorner []string         `yaml:"mode_corner"`
	NewPuzzle  []string         `yaml:"new_puzzle"`
	Reset      []string         `yaml:"reset"`
	Reveal     []string         `yaml:"reveal"`
}

// Default returns the built-in bindings.
func Default() *Keymap {
	cfg := Config{
		Digits:     map[string]uint8{},
		Erase:      []string{"delete", "backspace"},
		SelectAll:  []string{"ctrl+a"},
		ModeFill:   []string{"q"},
		ModeCenter: []string{"w"},
		ModeCorner: []string{"e"},
		NewPuzzle:  []string{"n"},
		Reset:      []string{"r"},
		Reveal:     []string{"s"},
	}
	for d := uint8(1); d <= 9; d++ {
		key := string('0' + rune(d))
		cfg.Digits[key] = d
		cfg.Digits["kp"+key] = d // keypad
	}
	km, err := Compile(cfg)
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(fmt.Sprintf("keymap: invalid default config: %v", err))
	}
	return km
}

// Load reads and compiles a keymap file.
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML keymap data. Unknown fields are rejected so that
// typos surface instead of silently dropping bindings.
func Parse(data []byte) (*Keymap, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	km, err := Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	return km, nil
}

// Compile validates a config and builds the lookup table.
// A key bound twice is an error; a digit outside 1..9 is an error.
func Compile(cfg Config) (*Keymap, error) {
	km := &Keymap{bindings: make(map[string]Command)}

	for key, d := range cfg.Digits {
		if d < 1 || d > 9 {
			return nil, fmt.Errorf("digit binding %q: digit %d out of range", key, d)
		}
		if err := km.bind(key, Command{Kind: KindDigit, Digit: d}); err != nil {
			return nil, err
		}
	}

	groups := []struct {
		keys []string
		kind CommandKind
	}{
		{cfg.Erase, KindErase},
		{cfg.SelectAll, KindSelectAll},
		{cfg.ModeFill, KindModeFill},
		{cfg.ModeCenter, KindModeCenter},
		{cfg.ModeCorner, KindModeCorner},
		{cfg.NewPuzzle, KindNewPuzzle},
		{cfg.Reset, KindResetPuzzle},
		{cfg.Reveal, KindReveal},
	}
	for _, g := range groups {
		for _, key := range g.keys {
			if err := km.bind(key, Command{Kind: g.kind}); err != nil {
				return nil, err
			}
		}
	}
	return km, nil
}

func (k *Keymap) bind(key string, cmd Command) error {
	if key == "" {
		return fmt.Errorf("empty key name")
	}
	if _, dup := k.bindings[key]; dup {
		return fmt.Errorf("key %q bound twice", key)
	}
	k.bindings[key] = cmd
	return nil
}

// Resolve looks up the command for a key name. The second return is
// false for unbound keys, which the dispatcher treats as a no-op.
func (k *Keymap) Resolve(key string) (Command, bool) {
	cmd, ok := k.bindings[key]
	return cmd, ok
}

// Len returns the number of bound keys.
func (k *Keymap) Len() int {
	return len(k.bindings)
}
