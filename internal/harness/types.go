package harness

import "github.com/conformix/schemacheck/internal/compare"

// ComparisonRecord captures the verdict for one client within a scenario.
type ComparisonRecord struct {
	// Client is the client runner name (e.g. "python", "typescript").
	Client string `json:"client"`

	// Label is the reporting label passed to the comparator,
	// "<client>/<scenario>".
	Label string `json:"label"`

	// Match is the comparison verdict. False when the documents differ or
	// when the export could not be loaded.
	Match bool `json:"match"`

	// Differences holds the serialized difference records keyed by path.
	// Empty when Match is true.
	Differences map[string]compare.DifferenceRecord `json:"differences,omitempty"`

	// BaselineFingerprint and ExportFingerprint identify the normalized
	// documents that were compared. ExportFingerprint is empty when the
	// export failed to load.
	BaselineFingerprint string `json:"baseline_fingerprint,omitempty"`
	ExportFingerprint   string `json:"export_fingerprint,omitempty"`

	// Error describes a load failure (missing or unparseable export).
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string `json:"run_id"`

	// Pass indicates overall scenario success: all assertions held and no
	// record carries a load error.
	Pass bool `json:"pass"`

	// Records contains one comparison record per client, ordered by client
	// name for deterministic traces.
	Records []ComparisonRecord `json:"records"`

	// Errors contains assertion and load error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result with the given run ID.
func NewResult(runID string) *Result {
	return &Result{
		RunID:   runID,
		Pass:    true,
		Records: []ComparisonRecord{},
		Errors:  []string{},
	}
}

// AddError adds an error message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Record returns the comparison record for a client, or nil.
func (r *Result) Record(client string) *ComparisonRecord {
	for i := range r.Records {
		if r.Records[i].Client == client {
			return &r.Records[i]
		}
	}
	return nil
}
