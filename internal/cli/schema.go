package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpause/internal/schema"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	CUE bool
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the settings document",
		Long: `Print the settings document a slicer host renders as the filter's form:
labels, descriptions, types, defaults and bounds of every setting.

With --cue, print the CUE schema settings files are validated against.

Examples:
  layerpause schema
  layerpause schema --cue > settings.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.CUE, "cue", false, "print the CUE schema instead of the settings document")

	return cmd
}

func runSchema(opts *SchemaOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	if opts.CUE {
		if opts.Format == "json" {
			return formatter.Success(map[string]string{"cue": schema.CUE()})
		}
		fmt.Fprint(cmd.OutOrStdout(), schema.CUE())
		return nil
	}

	if opts.Format == "json" {
		return formatter.Success(schema.NewDocument())
	}

	data, err := schema.MarshalDocument()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to render settings document", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
