package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/pause"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	settingsFlags
	InputFormat string
}

// InspectResult describes a stream and where a pause would land.
type InspectResult struct {
	Input       string             `json:"input"`
	Blocks      int                `json:"blocks"`
	LayerCount  int                `json:"layer_count"`
	Layers      []gcode.LayerStart `json:"layers"`
	Settings    pause.Settings     `json:"settings"`
	WouldInsert bool               `json:"would_insert"`
	BlockIndex  int                `json:"block_index"`
	LineIndex   int                `json:"line_index"`
	Directive   []string           `json:"directive"`
}

// WriteText renders the result for humans.
func (r InspectResult) WriteText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Input: %s (%d blocks, %d layers)\n", r.Input, r.Blocks, r.LayerCount)
	if r.WouldInsert {
		fmt.Fprintf(w, "Layer %d: pause would be inserted at block %d, line %d\n",
			r.Settings.PauseLayer, r.BlockIndex, r.LineIndex)
	} else {
		fmt.Fprintf(w, "Layer %d: not reached; no pause would be inserted\n", r.Settings.PauseLayer)
	}

	if verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Layers ===")
		if len(r.Layers) == 0 {
			fmt.Fprintln(w, "  (no layer markers)")
		}
		for _, l := range r.Layers {
			if l.First == nil {
				fmt.Fprintf(w, "  [%d] marker %d:%d, no instruction\n", l.Layer, l.Marker.Block, l.Marker.Line)
				continue
			}
			fmt.Fprintf(w, "  [%d] marker %d:%d, first instruction %d:%d\n",
				l.Layer, l.Marker.Block, l.Marker.Line, l.First.Block, l.First.Line)
		}
	}
	return nil
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show layers and where a pause would land",
		Long: `Dry run of apply: count the layers of a stream and report where the pause
directive would be inserted for the resolved settings. Nothing is written.

Examples:
  layerpause inspect print.gcode --layer 12
  layerpause inspect blocks.json --format json
  layerpause inspect print.gcode -v`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	opts.settingsFlags.register(cmd)
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format (gcode|blocks); default from extension")

	return cmd
}

func runInspect(opts *InspectOptions, inputPath string, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions, cmd.ErrOrStderr())
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
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

	settings, _, err := opts.settingsFlags.resolve(cmd, envCfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrorCode(err, ErrCodeInvalidSettings), "invalid settings", err)
	}

	in, err := readInput(cmd, inputPath, format)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrorCode(err, ErrCodeReadFailed), "failed to read input", err)
	}

	_, res := pause.Inject(in, settings)
	logger.Debug("inspected", "input", inputName(inputPath), "blocks", len(in), "layers_seen", res.LayersSeen)

	layers := gcode.Layers(in)
	if layers == nil {
		layers = []gcode.LayerStart{}
	}

	return formatter.Success(InspectResult{
		Input:       inputName(inputPath),
		Blocks:      len(in),
		LayerCount:  gcode.CountLayers(in),
		Layers:      layers,
		Settings:    settings,
		WouldInsert: res.Inserted,
		BlockIndex:  res.BlockIndex,
		LineIndex:   res.LineIndex,
		Directive:   res.Directive,
	})
}
