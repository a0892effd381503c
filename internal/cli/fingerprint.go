package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conformix/schemacheck/internal/baseline"
	"github.com/conformix/schemacheck/internal/compare"
	"github.com/conformix/schemacheck/internal/schema"
)

// FingerprintOptions holds flags for the fingerprint command.
type FingerprintOptions struct {
	*RootOptions
	Ignore []string
}

// FingerprintOutput is the JSON payload for a fingerprint.
type FingerprintOutput struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FingerprintOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fingerprint <config.json>",
		Short: "Print the content fingerprint of a normalized schema",
		Long: `Compute the SHA-256 fingerprint of a document's normalized canonical
form. Equivalent documents produce identical fingerprints regardless of key
order, property order, or volatile fields, so fingerprints can be compared
across clients and across runs without re-diffing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Ignore, "ignore", nil, "additional top-level field to ignore (repeatable)")

	return cmd
}

func runFingerprint(opts *FingerprintOptions, path string, cmd *cobra.Command) error {
	doc, err := baseline.LoadDocument(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load document", err)
	}

	ignored := append(append([]string{}, compare.DefaultIgnoredFields...), opts.Ignore...)
	normalized := compare.NewNormalizer(ignored...).Normalize(doc)

	fp, err := schema.Fingerprint(normalized)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fingerprint document", err)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{
			Status: "ok",
			Data:   FingerprintOutput{Path: path, Fingerprint: fp},
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), fp)
	return nil
}
