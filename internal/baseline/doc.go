// Package baseline loads collection configuration documents from disk and
// discovers the on-disk layout the client runners produce: baselines under
// <schemas-dir>/<schema>/config.json and exports under
// <results-dir>/exported-schemas/<client>/<schema>/config.json.
//
// It can also validate a document's shape against a CUE schema before it is
// handed to the comparison engine, so an authoring mistake in a baseline is
// caught as a validation error rather than surfacing as a confusing diff
// against every client.
package baseline
