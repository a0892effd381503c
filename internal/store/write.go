package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/conformix/schemacheck/internal/compare"
)

// ComparisonRow is one recorded client/schema comparison.
type ComparisonRow struct {
	RunID               string                              `json:"run_id"`
	Scenario            string                              `json:"scenario"`
	Client              string                              `json:"client"`
	SchemaName          string                              `json:"schema_name"`
	Match               bool                                `json:"match"`
	BaselineFingerprint string                              `json:"baseline_fingerprint,omitempty"`
	ExportFingerprint   string                              `json:"export_fingerprint,omitempty"`
	Differences         map[string]compare.DifferenceRecord `json:"differences"`
	Error               string                              `json:"error,omitempty"`
	CreatedUnix         int64                               `json:"created_unix"`
}

// WriteComparison inserts one comparison row. The differences map is
// serialized to JSON; CreatedUnix defaults to the current time when zero.
func (s *Store) WriteComparison(ctx context.Context, row ComparisonRow) error {
	diffs := row.Differences
	if diffs == nil {
		diffs = map[string]compare.DifferenceRecord{}
	}
	diffJSON, err := json.Marshal(diffs)
	if err != nil {
		return fmt.Errorf("write comparison: marshal differences: %w", err)
	}

	created := row.CreatedUnix
	if created == 0 {
		created = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO comparison_runs
		(run_id, scenario, client, schema_name, match, baseline_fingerprint, export_fingerprint, differences, error, created_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.RunID,
		row.Scenario,
		row.Client,
		row.SchemaName,
		boolToInt(row.Match),
		row.BaselineFingerprint,
		row.ExportFingerprint,
		string(diffJSON),
		row.Error,
		created,
	)
	if err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
