package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pencilmark/pencilmark/internal/board"
)

// Scenario defines a scripted game session: a puzzle, a sequence of
// input steps, and optional expectations on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed
	// by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Givens is the puzzle as an 81-character grid line.
	Givens string `yaml:"givens"`

	// Solution is the completed grid. Optional; solved from the givens
	// when omitted.
	Solution string `yaml:"solution,omitempty"`

	// Steps is the input script. Each step runs as one logic tick.
	Steps []Step `yaml:"steps"`

	// Expect holds final-state expectations. Optional; golden-file
	// scenarios often rely on the trace alone.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step is one scripted input: exactly one of Click or Key is set.
type Step struct {
	Click *ClickStep `yaml:"click,omitempty"`
	Key   string     `yaml:"key,omitempty"`
}

// ClickStep is a pointer press aimed at a cell (1-based row and
// column) or outside the board.
type ClickStep struct {
	Row     uint8 `yaml:"row,omitempty"`
	Col     uint8 `yaml:"col,omitempty"`
	Outside bool  `yaml:"outside,omitempty"`
	Multi   bool  `yaml:"multi,omitempty"`
	Drag    bool  `yaml:"drag,omitempty"`
}

// Expect specifies the final state to verify after all steps ran.
type Expect struct {
	// Mode is the expected input mode name (fill, center, corner).
	Mode string `yaml:"mode,omitempty"`

	// Selected lists the expected selection as coordinates ("r4c5").
	// Order does not matter; the comparison sorts both sides.
	Selected []string `yaml:"selected,omitempty"`

	// Cells maps coordinates to expected value tokens ("." empty,
	// "5" filled, "c13"/"k79"/"c1k9" marks). Subset match: cells not
	// named are not checked.
	Cells map[string]string `yaml:"cells,omitempty"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes scenario YAML. Unknown fields are rejected so
// that typos fail the scenario instead of silently skipping checks.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if sc.Givens == "" {
		return fmt.Errorf("scenario %q has no givens", sc.Name)
	}
	for i, step := range sc.Steps {
		hasClick := step.Click != nil
		hasKey := step.Key != ""
		if hasClick == hasKey {
			return fmt.Errorf("scenario %q step %d: exactly one of click or key required", sc.Name, i+1)
		}
		if hasClick && !step.Click.Outside {
			if step.Click.Row < 1 || step.Click.Row > board.Size ||
				step.Click.Col < 1 || step.Click.Col > board.Size {
				return fmt.Errorf("scenario %q step %d: click target r%dc%d out of range",
					sc.Name, i+1, step.Click.Row, step.Click.Col)
			}
		}
	}
	return nil
}
