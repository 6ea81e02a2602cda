package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/journal"
	"github.com/roach88/layerpause/internal/pause"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	settingsFlags
	Output      string
	InputFormat string
	Journal     string

	// IDGenerator allows overriding run ID generation (for testing).
	// If nil, defaults to journal.UUIDv7Generator.
	IDGenerator journal.IDGenerator
}

// ApplyResult reports one application of the filter.
type ApplyResult struct {
	Input        string         `json:"input"`
	Output       string         `json:"output"`
	SettingsFile string         `json:"settings_file,omitempty"`
	Settings     pause.Settings `json:"settings"`
	Inserted     bool           `json:"inserted"`
	BlockIndex   int            `json:"block_index"`
	LineIndex    int            `json:"line_index"`
	LayersSeen   int            `json:"layers_seen"`
	Directive    []string       `json:"directive"`
	RunID        string         `json:"-"`
}

// WriteText renders the result for humans.
func (r ApplyResult) WriteText(w io.Writer, verbose bool) error {
	if r.Inserted {
		fmt.Fprintf(w, "Pause inserted before layer %d (block %d, line %d)\n",
			r.Settings.PauseLayer, r.BlockIndex, r.LineIndex)
	} else {
		fmt.Fprintf(w, "Layer %d not reached (%d layers seen); stream unchanged\n",
			r.Settings.PauseLayer, r.LayersSeen)
	}
	if verbose {
		for _, line := range r.Directive {
			fmt.Fprintf(w, "  + %s\n", line)
		}
	}
	if r.RunID != "" {
		fmt.Fprintf(w, "Run recorded: %s\n", r.RunID)
	}
	return nil
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	return newApplyCommand(&ApplyOptions{RootOptions: rootOpts})
}

func newApplyCommand(opts *ApplyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <input>",
		Short: "Insert a pause before a layer",
		Long: `Insert a pause directive in front of the first instruction of a layer.

The input is flat g-code (split into blocks at ";LAYER:" lines) or, for .json
files or --input-format blocks, a JSON array of block strings. Use "-" to read
standard input. The output is written in the input's format.

Settings are resolved from the defaults, then the settings file (--settings or
LAYERPAUSE_SETTINGS), then any of --layer, --message and --beep given explicitly.

With --journal (or LAYERPAUSE_JOURNAL) the run is recorded in a SQLite journal.

Examples:
  layerpause apply print.gcode -o paused.gcode --layer 12
  layerpause apply print.gcode -o paused.gcode --settings pause.yaml
  cat blocks.json | layerpause apply - --input-format blocks --beep=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	opts.settingsFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format (gcode|blocks); default from extension")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the run in this SQLite journal")

	return cmd
}

func runApply(opts *ApplyOptions, inputPath string, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions, cmd.ErrOrStderr())

	// The report must not interleave with g-code written to stdout.
	reportWriter := cmd.OutOrStdout()
	if opts.Output == "" || opts.Output == stdinPath {
		reportWriter = cmd.ErrOrStderr()
	}
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    reportWriter,
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	envCfg, err := LoadEnv(opts.Environment)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to read environment", err)
	}

	format, err := detectFormat(inputPath, opts.InputFormat)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "invalid input format", err)
	}

	settings, settingsPath, err := opts.settingsFlags.resolve(cmd, envCfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrorCode(err, ErrCodeInvalidSettings), "invalid settings", err)
	}
	logger.Debug("settings resolved",
		"file", settingsPath,
		"pause_layer", settings.PauseLayer,
		"should_beep", settings.ShouldBeep,
	)

	in, err := readInput(cmd, inputPath, format)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrorCode(err, ErrCodeReadFailed), "failed to read input", err)
	}
	logger.Debug("input read", "input", inputName(inputPath), "format", format, "blocks", len(in))

	out, res := pause.Inject(in, settings)
	logger.Debug("filter applied",
		"inserted", res.Inserted,
		"block", res.BlockIndex,
		"line", res.LineIndex,
		"layers_seen", res.LayersSeen,
	)

	if err := writeOutput(cmd, opts.Output, out, format); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write output", err)
	}

	result := ApplyResult{
		Input:        inputName(inputPath),
		Output:       outputName(opts.Output),
		SettingsFile: settingsPath,
		Settings:     settings,
		Inserted:     res.Inserted,
		BlockIndex:   res.BlockIndex,
		LineIndex:    res.LineIndex,
		LayersSeen:   res.LayersSeen,
		Directive:    res.Directive,
	}

	journalPath := opts.Journal
	if journalPath == "" {
		journalPath = envCfg.Journal
	}
	if journalPath != "" {
		idGen := opts.IDGenerator
		if idGen == nil {
			idGen = journal.UUIDv7Generator{}
		}
		runID, err := recordRun(commandContext(cmd), journalPath, idGen.Generate(), result.Input, in, out, settings, res)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, "failed to record run", err)
		}
		result.RunID = runID
		logger.Debug("run recorded", "id", runID, "journal", journalPath)
	}

	return formatter.SuccessWithRun(result, result.RunID)
}

func outputName(path string) string {
	if path == "" || path == stdinPath {
		return "<stdout>"
	}
	return path
}

// recordRun appends the run to the journal at path, creating it if needed.
func recordRun(ctx context.Context, path, id, input string, in, out gcode.Stream, s pause.Settings, res pause.Result) (string, error) {
	j, err := journal.Open(path)
	if err != nil {
		return "", err
	}
	defer j.Close()

	run, err := journal.NewRun(id, input, Version, in, out, s, res)
	if err != nil {
		return "", err
	}
	written, err := j.WriteRun(ctx, run)
	if err != nil {
		return "", err
	}
	return written.ID, nil
}
