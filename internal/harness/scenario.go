package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/pause"
	"github.com/roach88/layerpause/internal/schema"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Blocks is the input stream, one string per block.
	Blocks []string `yaml:"blocks,omitempty"`

	// GCode is a flat input file, segmented with gcode.Segment.
	// Exactly one of Blocks and GCode must be set.
	GCode string `yaml:"gcode,omitempty"`

	// Settings are validated against the settings schema; absent keys
	// take their defaults.
	Settings map[string]any `yaml:"settings,omitempty"`

	// Passes is how many times the filter runs over its own output.
	// Zero means one pass.
	Passes int `yaml:"passes,omitempty"`

	// Assertions validate the final stream and the last pass's result.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the output of a scenario.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Value is the expected outcome (used by inserted).
	Value *bool `yaml:"value,omitempty"`

	// Block and Line address a position (used by position, line_equals).
	Block *int `yaml:"block,omitempty"`
	Line  *int `yaml:"line,omitempty"`

	// Text is the expected line (used by line_equals, contains, count).
	Text string `yaml:"text,omitempty"`

	// Count is the expected number (used by count, layers_seen).
	Count *int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertInserted   = "inserted"
	AssertPosition   = "position"
	AssertLayersSeen = "layers_seen"
	AssertLineEquals = "line_equals"
	AssertContains   = "contains"
	AssertCount      = "count"
	AssertUnchanged  = "unchanged"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Stream returns the scenario's input stream.
func (s *Scenario) Stream() gcode.Stream {
	if s.GCode != "" {
		return gcode.Segment(s.GCode)
	}
	return gcode.FromStrings(s.Blocks)
}

// ResolveSettings merges the scenario's settings over the defaults and
// validates them against the schema.
func (s *Scenario) ResolveSettings() (pause.Settings, error) {
	if len(s.Settings) == 0 {
		return schema.Defaults()
	}
	data, err := yaml.Marshal(s.Settings)
	if err != nil {
		return pause.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	return schema.Parse(s.Name+".yaml", data)
}

func (s *Scenario) passes() int {
	if s.Passes <= 0 {
		return 1
	}
	return s.Passes
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Blocks != nil && s.GCode != "" {
		return fmt.Errorf("blocks and gcode are mutually exclusive")
	}

	if s.Blocks == nil && s.GCode == "" {
		return fmt.Errorf("one of blocks or gcode is required")
	}

	if s.Passes < 0 {
		return fmt.Errorf("passes must be non-negative, got %d", s.Passes)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertInserted:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for inserted", index)
		}
	case AssertPosition, AssertLineEquals:
		if a.Block == nil || a.Line == nil {
			return fmt.Errorf("assertions[%d]: block and line are required for %s", index, a.Type)
		}
	case AssertLayersSeen:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for layers_seen", index)
		}
	case AssertContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for contains", index)
		}
	case AssertCount:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for count", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for count", index)
		}
	case AssertUnchanged:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
