package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conformix/schemacheck/internal/baseline"
	"github.com/conformix/schemacheck/internal/compare"
	"github.com/conformix/schemacheck/internal/schema"
)

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	*RootOptions
	Ignore []string
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "normalize <config.json>",
		Short: "Print a schema document in normalized canonical form",
		Long: `Normalize a configuration document and print the canonical JSON
rendering: volatile fields stripped, properties sorted by name, object keys
in lexicographic order. Two semantically equivalent documents normalize to
byte-identical output, which makes this useful for ad-hoc diffing with
standard tools.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Ignore, "ignore", nil, "additional top-level field to ignore (repeatable)")

	return cmd
}

func runNormalize(opts *NormalizeOptions, path string, cmd *cobra.Command) error {
	doc, err := baseline.LoadDocument(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load document", err)
	}

	ignored := append(append([]string{}, compare.DefaultIgnoredFields...), opts.Ignore...)
	normalized := compare.NewNormalizer(ignored...).Normalize(doc)

	data, err := schema.MarshalCanonical(normalized)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to serialize document", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
