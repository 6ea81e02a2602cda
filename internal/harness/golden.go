package harness

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is the directory, relative to a scenario file, holding its
// golden snapshot.
const GoldenDir = "golden"

// GoldenPath returns the golden file path for a scenario stored in dir.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, GoldenDir, name+".golden")
}

// Snapshot renders a result as stable text for golden comparison.
//
// The header records the last pass's outcome. Each output block follows
// verbatim under a "--- block N ---" line, tagged "(modified)" when it
// differs from the input block at the same index. A block that does not end
// in a newline is followed by a "\ no newline at end of block" line.
func Snapshot(name string, result *Result) []byte {
	var buf bytes.Buffer

	res := result.Inject
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	fmt.Fprintf(&buf, "pause_layer: %d\n", result.Settings.PauseLayer)
	fmt.Fprintf(&buf, "inserted: %t\n", res.Inserted)
	fmt.Fprintf(&buf, "block_index: %d\n", res.BlockIndex)
	fmt.Fprintf(&buf, "line_index: %d\n", res.LineIndex)
	fmt.Fprintf(&buf, "layers_seen: %d\n", res.LayersSeen)

	for i, block := range result.Output {
		tag := ""
		if i >= len(result.Input) || result.Input[i] != block {
			tag = " (modified)"
		}
		fmt.Fprintf(&buf, "--- block %d%s ---\n", i, tag)
		buf.WriteString(string(block))
		if !strings.HasSuffix(string(block), "\n") {
			buf.WriteString("\n\\ no newline at end of block\n")
		}
	}

	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its snapshot against
// fixtureDir/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, fixtureDir string, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, fixtureDir, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, fixtureDir, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(fixtureDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Snapshot(scenarioName, result))
}
