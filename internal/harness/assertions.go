package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/layerpause/internal/gcode"
)

// AssertionError is returned when an assertion fails.
// It includes the output stream to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Output   gcode.Stream // Output stream for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nOutput:\n")
	for i, block := range e.Output {
		fmt.Fprintf(&buf, "  [%d] %q\n", i, string(block))
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the result and returns
// one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertInserted:
		return assertInserted(result, a)
	case AssertPosition:
		return assertPosition(result, a)
	case AssertLayersSeen:
		return assertLayersSeen(result, a)
	case AssertLineEquals:
		return assertLineEquals(result, a)
	case AssertContains:
		return assertContains(result, a)
	case AssertCount:
		return assertCount(result, a)
	case AssertUnchanged:
		return assertUnchanged(result)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func fail(result *Result, typ, expected, actual string) error {
	return &AssertionError{Type: typ, Expected: expected, Actual: actual, Output: result.Output}
}

func assertInserted(result *Result, a Assertion) error {
	if result.Inject.Inserted != *a.Value {
		return fail(result, AssertInserted,
			fmt.Sprintf("inserted=%t", *a.Value),
			fmt.Sprintf("inserted=%t", result.Inject.Inserted))
	}
	return nil
}

func assertPosition(result *Result, a Assertion) error {
	got := result.Inject
	if got.BlockIndex != *a.Block || got.LineIndex != *a.Line {
		return fail(result, AssertPosition,
			fmt.Sprintf("block %d line %d", *a.Block, *a.Line),
			fmt.Sprintf("block %d line %d", got.BlockIndex, got.LineIndex))
	}
	return nil
}

func assertLayersSeen(result *Result, a Assertion) error {
	if result.Inject.LayersSeen != *a.Count {
		return fail(result, AssertLayersSeen,
			fmt.Sprintf("%d layers", *a.Count),
			fmt.Sprintf("%d layers", result.Inject.LayersSeen))
	}
	return nil
}

// assertLineEquals addresses lines the same way the filter does: trimmed
// block, split on newlines.
func assertLineEquals(result *Result, a Assertion) error {
	expected := fmt.Sprintf("block %d line %d = %q", *a.Block, *a.Line, a.Text)
	if *a.Block < 0 || *a.Block >= len(result.Output) {
		return fail(result, AssertLineEquals, expected,
			fmt.Sprintf("block %d out of range (%d blocks)", *a.Block, len(result.Output)))
	}
	lines := result.Output[*a.Block].Lines()
	if *a.Line < 0 || *a.Line >= len(lines) {
		return fail(result, AssertLineEquals, expected,
			fmt.Sprintf("line %d out of range (%d lines)", *a.Line, len(lines)))
	}
	if lines[*a.Line] != a.Text {
		return fail(result, AssertLineEquals, expected, fmt.Sprintf("%q", lines[*a.Line]))
	}
	return nil
}

func assertContains(result *Result, a Assertion) error {
	if countLines(result.Output, a.Text) == 0 {
		return fail(result, AssertContains, fmt.Sprintf("a line %q", a.Text), "not found in output")
	}
	return nil
}

func assertCount(result *Result, a Assertion) error {
	n := countLines(result.Output, a.Text)
	if n != *a.Count {
		return fail(result, AssertCount,
			fmt.Sprintf("%d lines %q", *a.Count, a.Text),
			fmt.Sprintf("%d lines", n))
	}
	return nil
}

func assertUnchanged(result *Result) error {
	if !gcode.Equal(result.Input, result.Output) {
		return fail(result, AssertUnchanged, "output identical to input", "output differs")
	}
	return nil
}

func countLines(s gcode.Stream, text string) int {
	n := 0
	for _, block := range s {
		for _, line := range block.Lines() {
			if line == text {
				n++
			}
		}
	}
	return n
}
