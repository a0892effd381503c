package harness

import (
	"fmt"
	"sort"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the comparison records so a failure is debuggable from the
// message alone.
type AssertionError struct {
	Type     string             // Assertion type for categorization
	Expected string             // Human-readable expected outcome
	Actual   string             // Human-readable actual outcome
	Records  []ComparisonRecord // Full record trace for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nComparison records:\n")
	for _, record := range e.Records {
		status := "match"
		if !record.Match {
			status = fmt.Sprintf("%d difference(s)", len(record.Differences))
		}
		if record.Error != "" {
			status = "error: " + record.Error
		}
		fmt.Fprintf(&buf, "  %s: %s\n", record.Client, status)
	}

	return buf.String()
}

// assertAllMatch checks that every client compared clean.
func assertAllMatch(result *Result, _ Assertion) error {
	var failed []string
	for _, record := range result.Records {
		if !record.Match {
			failed = append(failed, record.Client)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertAllMatch,
		Expected: "all clients match the baseline",
		Actual:   fmt.Sprintf("mismatched clients: %s", strings.Join(failed, ", ")),
		Records:  result.Records,
	}
}

// assertMatch checks that the named client compared clean.
func assertMatch(result *Result, assertion Assertion) error {
	record := result.Record(assertion.Client)
	if record == nil {
		return &AssertionError{
			Type:     AssertMatch,
			Expected: fmt.Sprintf("client %s compared", assertion.Client),
			Actual:   "no comparison record for client",
			Records:  result.Records,
		}
	}
	if record.Match {
		return nil
	}
	return &AssertionError{
		Type:     AssertMatch,
		Expected: fmt.Sprintf("client %s matches the baseline", assertion.Client),
		Actual:   describeRecord(record),
		Records:  result.Records,
	}
}

// assertMismatchAt checks that the named client has a difference of the
// given kind at the given path. An empty kind matches any difference there.
func assertMismatchAt(result *Result, assertion Assertion) error {
	record := result.Record(assertion.Client)
	if record == nil {
		return &AssertionError{
			Type:     AssertMismatchAt,
			Expected: fmt.Sprintf("client %s compared", assertion.Client),
			Actual:   "no comparison record for client",
			Records:  result.Records,
		}
	}

	diff, ok := record.Differences[assertion.Path]
	if !ok {
		return &AssertionError{
			Type:     AssertMismatchAt,
			Expected: fmt.Sprintf("client %s has a difference at %s", assertion.Client, assertion.Path),
			Actual:   fmt.Sprintf("difference paths: %s", strings.Join(diffPaths(record), ", ")),
			Records:  result.Records,
		}
	}

	if assertion.Kind != "" && diff.Kind != assertion.Kind {
		return &AssertionError{
			Type:     AssertMismatchAt,
			Expected: fmt.Sprintf("difference at %s of kind %s", assertion.Path, assertion.Kind),
			Actual:   fmt.Sprintf("kind %s", diff.Kind),
			Records:  result.Records,
		}
	}

	return nil
}

// assertDifferenceCount checks that the named client has exactly the
// expected number of differences.
func assertDifferenceCount(result *Result, assertion Assertion) error {
	record := result.Record(assertion.Client)
	if record == nil {
		return &AssertionError{
			Type:     AssertDifferenceCount,
			Expected: fmt.Sprintf("client %s compared", assertion.Client),
			Actual:   "no comparison record for client",
			Records:  result.Records,
		}
	}

	if len(record.Differences) != assertion.Count {
		return &AssertionError{
			Type:     AssertDifferenceCount,
			Expected: fmt.Sprintf("%d difference(s) for client %s", assertion.Count, assertion.Client),
			Actual:   fmt.Sprintf("%d difference(s) at: %s", len(record.Differences), strings.Join(diffPaths(record), ", ")),
			Records:  result.Records,
		}
	}

	return nil
}

// describeRecord summarizes a mismatched record for assertion messages.
func describeRecord(record *ComparisonRecord) string {
	if record.Error != "" {
		return "load error: " + record.Error
	}
	return fmt.Sprintf("%d difference(s) at: %s", len(record.Differences), strings.Join(diffPaths(record), ", "))
}

// diffPaths returns the record's difference paths in sorted order.
func diffPaths(record *ComparisonRecord) []string {
	paths := make([]string, 0, len(record.Differences))
	for p := range record.Differences {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertAllMatch:
			err = assertAllMatch(result, assertion)
		case AssertMatch:
			err = assertMatch(result, assertion)
		case AssertMismatchAt:
			err = assertMismatchAt(result, assertion)
		case AssertDifferenceCount:
			err = assertDifferenceCount(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
