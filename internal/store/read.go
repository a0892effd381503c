package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conformix/schemacheck/internal/compare"
)

// Filter narrows ListComparisons results. Zero-value fields match anything.
type Filter struct {
	RunID      string
	Client     string
	SchemaName string
	Limit      int // 0 means no limit
}

// ListComparisons returns recorded comparisons, newest first within a run,
// ordered deterministically by insertion id.
func (s *Store) ListComparisons(ctx context.Context, f Filter) ([]ComparisonRow, error) {
	query := `
		SELECT run_id, scenario, client, schema_name, match,
		       baseline_fingerprint, export_fingerprint, differences, error, created_unix
		FROM comparison_runs
		WHERE 1=1`
	var args []any

	if f.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, f.RunID)
	}
	if f.Client != "" {
		query += " AND client = ?"
		args = append(args, f.Client)
	}
	if f.SchemaName != "" {
		query += " AND schema_name = ?"
		args = append(args, f.SchemaName)
	}

	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer rows.Close()

	var out []ComparisonRow
	for rows.Next() {
		var row ComparisonRow
		var match int
		var diffJSON string
		if err := rows.Scan(
			&row.RunID,
			&row.Scenario,
			&row.Client,
			&row.SchemaName,
			&match,
			&row.BaselineFingerprint,
			&row.ExportFingerprint,
			&diffJSON,
			&row.Error,
			&row.CreatedUnix,
		); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		row.Match = match != 0

		row.Differences = map[string]compare.DifferenceRecord{}
		if diffJSON != "" {
			if err := json.Unmarshal([]byte(diffJSON), &row.Differences); err != nil {
				return nil, fmt.Errorf("decode differences for run %s: %w", row.RunID, err)
			}
		}

		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}

	return out, nil
}
