package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpause/internal/digest"
	"github.com/roach88/layerpause/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Journal string
	Limit   int
	RunID   string
	Input   string // list only runs over this input's content
}

// HistoryResult holds the runs listed from a journal.
type HistoryResult struct {
	Journal string        `json:"journal"`
	Runs    []journal.Run `json:"runs"`
}

// WriteText renders the runs for humans, oldest first.
func (r HistoryResult) WriteText(w io.Writer, verbose bool) error {
	if len(r.Runs) == 0 {
		fmt.Fprintf(w, "No runs recorded in %s\n", r.Journal)
		return nil
	}

	fmt.Fprintf(w, "Runs in %s:\n", r.Journal)
	for _, run := range r.Runs {
		outcome := fmt.Sprintf("not reached (%d layers)", run.LayersSeen)
		if run.Inserted {
			outcome = fmt.Sprintf("inserted at block %d, line %d", run.BlockIndex, run.LineIndex)
		}
		fmt.Fprintf(w, "  [%d] %s %s layer=%d %s\n",
			run.Seq, run.ID, run.Input, run.Settings.PauseLayer, outcome)
		if verbose {
			fmt.Fprintf(w, "       input:    %s\n", run.InputDigest)
			fmt.Fprintf(w, "       output:   %s\n", run.OutputDigest)
			fmt.Fprintf(w, "       settings: %s\n", run.SettingsDigest)
			fmt.Fprintf(w, "       version:  %s\n", run.ToolVersion)
		}
	}
	return nil
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a journal",
		Long: `List the runs recorded by apply --journal, oldest first.

The journal defaults to LAYERPAUSE_JOURNAL. Use --run to show a single run
and --input to list the runs made over the same input content.

Examples:
  layerpause history --journal runs.db
  layerpause history --journal runs.db --limit 5 --format json
  layerpause history --journal runs.db --input print.gcode`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to the SQLite journal")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show the most recent N runs (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run by ID")
	cmd.Flags().StringVar(&opts.Input, "input", "", "show runs over this input file's content")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	envCfg, err := LoadEnv(opts.Environment)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to read environment", err)
	}

	path := opts.Journal
	if path == "" {
		path = envCfg.Journal
	}
	if path == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
			"no journal: pass --journal or set LAYERPAUSE_JOURNAL", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return formatter.Fail(ExitCommandError, ErrorCode(err, ErrCodeJournal), "journal not found", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, "failed to open journal", err)
	}
	defer j.Close()

	ctx := commandContext(cmd)
	var runs []journal.Run
	switch {
	case opts.RunID != "":
		run, err := j.ReadRun(ctx, opts.RunID)
		if errors.Is(err, journal.ErrRunNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, "run not found", err)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, "failed to read run", err)
		}
		runs = []journal.Run{run}

	case opts.Input != "":
		format, err := detectFormat(opts.Input, "")
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "invalid input format", err)
		}
		in, err := readInput(cmd, opts.Input, format)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrorCode(err, ErrCodeReadFailed), "failed to read input", err)
		}
		runs, err = j.ReadRunsByInput(ctx, digest.Stream(in))
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, "failed to read runs", err)
		}

	default:
		runs, err = j.ReadRuns(ctx, opts.Limit)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, "failed to read runs", err)
		}
	}

	return formatter.Success(HistoryResult{Journal: path, Runs: runs})
}
