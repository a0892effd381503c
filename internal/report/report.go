// Package report aggregates recorded comparisons into per-client and
// per-schema statistics and renders them as markdown or a JSON summary.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/conformix/schemacheck/internal/store"
)

// Stats counts outcomes for one grouping key.
type Stats struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// PassRate returns the pass percentage, 0 for an empty group.
func (s Stats) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}

// Summary aggregates comparison rows across clients and schemas.
type Summary struct {
	Total    int              `json:"total"`
	Passed   int              `json:"passed"`
	Failed   int              `json:"failed"`
	PassRate float64          `json:"pass_rate"`
	Clients  map[string]Stats `json:"clients"`
	Schemas  map[string]Stats `json:"schemas"`
}

// Summarize computes aggregate statistics over comparison rows.
func Summarize(rows []store.ComparisonRow) Summary {
	summary := Summary{
		Clients: make(map[string]Stats),
		Schemas: make(map[string]Stats),
	}

	bump := func(m map[string]Stats, key string, passed bool) {
		s := m[key]
		s.Total++
		if passed {
			s.Passed++
		} else {
			s.Failed++
		}
		m[key] = s
	}

	for _, row := range rows {
		summary.Total++
		if row.Match {
			summary.Passed++
		} else {
			summary.Failed++
		}
		bump(summary.Clients, row.Client, row.Match)
		bump(summary.Schemas, row.SchemaName, row.Match)
	}

	if summary.Total > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.Total) * 100
	}

	return summary
}

// Markdown renders the report the CI pipeline publishes: summary, per-client
// and per-schema sections, and detailed failures.
func Markdown(summary Summary, rows []store.ComparisonRow) string {
	var b strings.Builder

	b.WriteString("# Schema Comparison Report\n\n")
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total Comparisons: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Passed: %d\n", summary.Passed)
	fmt.Fprintf(&b, "- Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "- Pass Rate: %.1f%%\n\n", summary.PassRate)

	writeGroup(&b, "Results by Client", summary.Clients)
	writeGroup(&b, "Results by Schema", summary.Schemas)

	failures := make([]store.ComparisonRow, 0)
	for _, row := range rows {
		if !row.Match {
			failures = append(failures, row)
		}
	}

	if len(failures) == 0 {
		b.WriteString("## Cross-Language Consistency\n\n")
		b.WriteString("All clients produced identical schemas for all test cases.\n")
		return b.String()
	}

	b.WriteString("## Detailed Failures\n\n")
	for _, row := range failures {
		fmt.Fprintf(&b, "### %s / %s\n\n", row.Client, row.SchemaName)
		if row.Error != "" {
			fmt.Fprintf(&b, "**Error:** %s\n\n", row.Error)
			continue
		}
		b.WriteString("**Differences:**\n\n")
		diffJSON, err := json.MarshalIndent(row.Differences, "", "  ")
		if err != nil {
			diffJSON = []byte(fmt.Sprintf("%v", row.Differences))
		}
		fmt.Fprintf(&b, "```json\n%s\n```\n\n", diffJSON)
	}

	return b.String()
}

// writeGroup renders one per-key section with stable key ordering.
func writeGroup(b *strings.Builder, title string, group map[string]Stats) {
	fmt.Fprintf(b, "## %s\n\n", title)

	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		stats := group[key]
		status := "PASS"
		if stats.Failed > 0 {
			status = "FAIL"
		}
		fmt.Fprintf(b, "### %s (%s)\n\n", key, status)
		fmt.Fprintf(b, "- Total: %d\n", stats.Total)
		fmt.Fprintf(b, "- Passed: %d\n", stats.Passed)
		fmt.Fprintf(b, "- Failed: %d\n", stats.Failed)
		fmt.Fprintf(b, "- Pass Rate: %.1f%%\n\n", stats.PassRate())
	}
}

// JSONSummary renders the machine-readable companion to the markdown report.
func JSONSummary(summary Summary, rows []store.ComparisonRow) ([]byte, error) {
	payload := struct {
		Summary Summary               `json:"summary"`
		Results []store.ComparisonRow `json:"results"`
	}{
		Summary: summary,
		Results: rows,
	}
	return json.MarshalIndent(payload, "", "  ")
}
