package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/pause"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Settings are the resolved settings the filter ran with.
	Settings pause.Settings `json:"settings"`

	// Input and Output are the streams before the first and after the last pass.
	Input  gcode.Stream `json:"input"`
	Output gcode.Stream `json:"output"`

	// Inject is the result of the last pass.
	Inject pause.Result `json:"inject"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Harness executes scenarios.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness logging through logger. A nil logger discards logs.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a silent harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run resolves the scenario's settings, applies the filter the requested
// number of times, and evaluates the assertions.
//
// An error means the scenario could not be executed (bad settings).
// Assertion failures are reported through Result.Pass and Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	settings, err := scenario.ResolveSettings()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	input := scenario.Stream()
	result := &Result{
		Pass:     true,
		Errors:   []string{},
		Settings: settings,
		Input:    input,
	}

	out := input
	for pass := 1; pass <= scenario.passes(); pass++ {
		var res pause.Result
		out, res = pause.Inject(out, settings)
		result.Inject = res
		h.logger.Debug("pass applied",
			"scenario", scenario.Name,
			"pass", pass,
			"inserted", res.Inserted,
			"block", res.BlockIndex,
			"line", res.LineIndex,
			"layers_seen", res.LayersSeen,
		)
	}
	result.Output = out

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario executed", "scenario", scenario.Name, "pass", result.Pass)
	return result, nil
}
