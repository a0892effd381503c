package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conformix/schemacheck/internal/baseline"
	"github.com/conformix/schemacheck/internal/compare"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Label   string
	Ignore  []string
	CUEPath string // optional CUE shape validation before comparing
}

// CompareOutput is the JSON payload for a comparison verdict.
type CompareOutput struct {
	Label       string                              `json:"label"`
	Match       bool                                `json:"match"`
	Differences map[string]compare.DifferenceRecord `json:"differences"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <baseline.json> <exported.json>",
		Short: "Compare an exported schema against a baseline",
		Long: `Compare two collection configuration documents after normalization.

Volatile server-assigned fields are stripped and order-insensitive
collections are sorted before the structural diff runs.

Exit codes:
  0 - Schemas match
  1 - Schemas differ
  2 - Command error (missing files, invalid JSON, etc.)

Examples:
  schemacheck compare schemas/Article/config.json exported/python/Article/config.json
  schemacheck compare baseline.json exported.json --ignore shardingConfig
  schemacheck compare baseline.json exported.json --validate collection.cue --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Label, "label", "", "reporting label (defaults to the exported file path)")
	cmd.Flags().StringArrayVar(&opts.Ignore, "ignore", nil, "additional top-level field to ignore (repeatable)")
	cmd.Flags().StringVar(&opts.CUEPath, "validate", "", "CUE schema to validate both documents against before comparing")

	return cmd
}

func runCompare(opts *CompareOptions, baselinePath, exportedPath string, cmd *cobra.Command) error {
	baseDoc, err := baseline.LoadDocument(baselinePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load baseline", err)
	}
	exportDoc, err := baseline.LoadDocument(exportedPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load exported document", err)
	}

	if opts.CUEPath != "" {
		validator, err := baseline.NewValidatorFromFile(opts.CUEPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load CUE schema", err)
		}
		if err := validator.Validate(baseDoc, baselinePath); err != nil {
			return WrapExitError(ExitCommandError, "baseline failed validation", err)
		}
		if err := validator.Validate(exportDoc, exportedPath); err != nil {
			return WrapExitError(ExitCommandError, "exported document failed validation", err)
		}
	}

	label := opts.Label
	if label == "" {
		label = exportedPath
	}

	ignored := append(append([]string{}, compare.DefaultIgnoredFields...), opts.Ignore...)
	comparator := compare.New(
		compare.WithIgnoredFields(ignored...),
		compare.WithLogger(opts.RootOptions.logger()),
	)

	verdict := comparator.Compare(baseDoc, exportDoc, label)

	output := CompareOutput{
		Label:       label,
		Match:       verdict.Match,
		Differences: compare.MarshalDifferences(verdict.Differences),
	}

	if opts.Format == "json" {
		return outputCompareJSON(cmd, output)
	}
	return outputCompareText(cmd, output, verdict)
}

func outputCompareJSON(cmd *cobra.Command, output CompareOutput) error {
	response := CLIResponse{Status: "ok", Data: output}
	if !output.Match {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_MISMATCH",
			Message: fmt.Sprintf("%d difference(s)", len(output.Differences)),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !output.Match {
		return NewExitError(ExitFailure, "schemas differ")
	}
	return nil
}

func outputCompareText(cmd *cobra.Command, output CompareOutput, verdict compare.ComparisonResult) error {
	w := cmd.OutOrStdout()

	if output.Match {
		fmt.Fprintf(w, "✓ schemas match: %s\n", output.Label)
		return nil
	}

	fmt.Fprintf(w, "✗ schemas differ: %s\n", output.Label)

	paths := make([]string, 0, len(verdict.Differences))
	for p := range verdict.Differences {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		fmt.Fprintf(w, "  %s: %s\n", p, verdict.Differences[p].Describe())
	}

	return NewExitError(ExitFailure, "schemas differ")
}
