package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/conformix/schemacheck/internal/baseline"
	"github.com/conformix/schemacheck/internal/compare"
	"github.com/conformix/schemacheck/internal/schema"
	"github.com/conformix/schemacheck/internal/store"
)

// RunOptions configures a scenario execution.
type RunOptions struct {
	// Store, when set, records one history row per client comparison.
	Store *store.Store

	// Logger receives per-comparison context. Defaults to a discard logger.
	Logger *slog.Logger

	// RunID overrides the generated run ID, for deterministic tests.
	RunID string
}

// Run executes a conformance scenario and returns the result.
//
// For each client in the scenario's exported map (in client-name order):
//  1. Load the exported document; a load failure becomes a failed record
//     carrying the error, and fails the scenario.
//  2. Compare it against the baseline with the scenario's ignore set layered
//     over the defaults.
//  3. Fingerprint both normalized documents for the record.
//
// Assertions are then evaluated against the collected records.
func Run(scenario *Scenario, opts RunOptions) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	baseDoc, err := baseline.LoadDocument(scenario.Baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}

	ignored := append(append([]string{}, compare.DefaultIgnoredFields...), scenario.Ignore...)
	comparator := compare.New(
		compare.WithIgnoredFields(ignored...),
		compare.WithLogger(logger),
	)

	result := NewResult(runID)

	clients := make([]string, 0, len(scenario.Exported))
	for client := range scenario.Exported {
		clients = append(clients, client)
	}
	sort.Strings(clients)

	for _, client := range clients {
		record := runClient(comparator, baseDoc, scenario, client, logger)
		result.Records = append(result.Records, record)
		if record.Error != "" {
			result.AddError(fmt.Sprintf("client %s: %s", client, record.Error))
		}
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	if opts.Store != nil {
		if err := recordRun(opts.Store, scenario, result); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	return result, nil
}

// runClient compares one client's export against the baseline.
func runClient(comparator *compare.Comparator, baseDoc schema.Value, scenario *Scenario, client string, logger *slog.Logger) ComparisonRecord {
	label := client + "/" + scenario.Name
	record := ComparisonRecord{Client: client, Label: label}

	exportDoc, err := baseline.LoadDocument(scenario.Exported[client])
	if err != nil {
		record.Error = err.Error()
		logger.Warn("export load failed", "client", client, "scenario", scenario.Name, "error", err)
		return record
	}

	verdict := comparator.Compare(baseDoc, exportDoc, label)
	record.Match = verdict.Match
	record.Differences = compare.MarshalDifferences(verdict.Differences)

	norm := comparator.Normalizer()
	if fp, err := schema.Fingerprint(norm.Normalize(baseDoc)); err == nil {
		record.BaselineFingerprint = fp
	}
	if fp, err := schema.Fingerprint(norm.Normalize(exportDoc)); err == nil {
		record.ExportFingerprint = fp
	}

	logger.Info("client compared",
		"client", client,
		"scenario", scenario.Name,
		"match", record.Match,
		"differences", len(record.Differences),
	)
	return record
}

// recordRun writes one history row per comparison record.
func recordRun(st *store.Store, scenario *Scenario, result *Result) error {
	ctx := context.Background()
	for _, record := range result.Records {
		row := store.ComparisonRow{
			RunID:               result.RunID,
			Scenario:            scenario.Name,
			Client:              record.Client,
			SchemaName:          scenario.Name,
			Match:               record.Match,
			BaselineFingerprint: record.BaselineFingerprint,
			ExportFingerprint:   record.ExportFingerprint,
			Differences:         record.Differences,
			Error:               record.Error,
		}
		if err := st.WriteComparison(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
