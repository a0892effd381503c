package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conformix/schemacheck/internal/report"
	"github.com/conformix/schemacheck/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	DBPath     string
	RunID      string
	OutputPath string
	JSONPath   string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a comparison report from recorded runs",
		Long: `Generate a markdown comparison report (and JSON summary) from the
run-history database: totals, per-client and per-schema pass rates, and the
full difference payload for every failure.

Examples:
  schemacheck report --db runs.db
  schemacheck report --db runs.db --output report.md --json-output summary.json
  schemacheck report --db runs.db --run-id 7f9f2a6e-...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "run-history SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "limit the report to one run")
	cmd.Flags().StringVar(&opts.OutputPath, "output", "", "write the markdown report to this path instead of stdout")
	cmd.Flags().StringVar(&opts.JSONPath, "json-output", "", "also write a JSON summary to this path")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	rows, err := st.ListComparisons(cmd.Context(), store.Filter{RunID: opts.RunID})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if len(rows) == 0 {
		return NewExitError(ExitCommandError, "no recorded comparisons found")
	}

	summary := report.Summarize(rows)
	markdown := report.Markdown(summary, rows)

	if opts.JSONPath != "" {
		data, err := report.JSONSummary(summary, rows)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to render JSON summary", err)
		}
		if err := writeReportFile(opts.JSONPath, data); err != nil {
			return err
		}
	}

	if opts.OutputPath != "" {
		if err := writeReportFile(opts.OutputPath, []byte(markdown)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to: %s\n", opts.OutputPath)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d comparison(s) failed", summary.Failed))
	}
	return nil
}

func writeReportFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WrapExitError(ExitCommandError, "failed to create output directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output file", err)
	}
	return nil
}
