package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/conformix/schemacheck/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath     string
	Client     string
	SchemaName string
	Limit      int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded comparison runs",
		Long: `List comparisons recorded in the run-history database, newest first.
Fingerprints make drift between runs visible without re-reading documents:
a changed export fingerprint against a stable baseline fingerprint means
the client's output changed.

Examples:
  schemacheck history --db runs.db
  schemacheck history --db runs.db --client python --limit 20
  schemacheck history --db runs.db --schema article-basic --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "run-history SQLite database (required)")
	cmd.Flags().StringVar(&opts.Client, "client", "", "filter by client name")
	cmd.Flags().StringVar(&opts.SchemaName, "schema", "", "filter by schema name")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum rows to list (0 for all)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	rows, err := st.ListComparisons(cmd.Context(), store.Filter{
		Client:     opts.Client,
		SchemaName: opts.SchemaName,
		Limit:      opts.Limit,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: rows})
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No recorded comparisons.")
		return nil
	}

	for _, row := range rows {
		status := "✓"
		detail := ""
		if !row.Match {
			status = "✗"
			if row.Error != "" {
				detail = "  error: " + row.Error
			} else {
				detail = fmt.Sprintf("  %d difference(s)", len(row.Differences))
			}
		}
		created := time.Unix(row.CreatedUnix, 0).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%s %s  %s/%s  run=%s%s\n", status, created, row.Client, row.SchemaName, shortID(row.RunID), detail)
	}

	return nil
}

// shortID truncates a run UUID for readable listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
