// Package harness runs cross-client conformance scenarios.
//
// A scenario binds one baseline collection configuration to the documents
// each client runner exported after round-tripping that baseline through the
// database. The harness compares every export against the baseline with the
// comparison engine, collects the per-client verdicts into a deterministic
// record trace, evaluates the scenario's assertions against that trace, and
// optionally snapshots the trace to a golden file.
//
// The client runners themselves are external collaborators: the harness only
// consumes the JSON documents they leave on disk. A missing export is a
// failed comparison with an explanatory error, never a crash.
package harness
