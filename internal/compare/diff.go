package compare

import (
	"fmt"

	"github.com/conformix/schemacheck/internal/schema"
)

// Difference kinds.
const (
	KindTypeMismatch        = "type_mismatch"
	KindMissingInFirst      = "missing_in_first"
	KindMissingInSecond     = "missing_in_second"
	KindArrayLengthMismatch = "array_length_mismatch"
	KindValueMismatch       = "value_mismatch"
)

// Difference is a sealed interface over the typed discrepancy records the
// Differ can emit. Each variant carries only the fields relevant to its kind.
type Difference interface {
	// Kind returns the difference kind tag.
	Kind() string
	// Describe renders a one-line human-readable summary.
	Describe() string
}

// TypeMismatch reports that the two sides hold different value kinds.
// The subtree below is not diffed further.
type TypeMismatch struct {
	Type1 string `json:"type1"`
	Type2 string `json:"type2"`
}

func (TypeMismatch) Kind() string { return KindTypeMismatch }

func (d TypeMismatch) Describe() string {
	return fmt.Sprintf("type mismatch: %s vs %s", d.Type1, d.Type2)
}

// MissingInFirst reports a key present only in the second document.
type MissingInFirst struct {
	Value2 schema.Value `json:"value2"`
}

func (MissingInFirst) Kind() string { return KindMissingInFirst }

func (d MissingInFirst) Describe() string {
	return fmt.Sprintf("missing in first: second has %s", renderValue(d.Value2))
}

// MissingInSecond reports a key present only in the first document.
type MissingInSecond struct {
	Value1 schema.Value `json:"value1"`
}

func (MissingInSecond) Kind() string { return KindMissingInSecond }

func (d MissingInSecond) Describe() string {
	return fmt.Sprintf("missing in second: first has %s", renderValue(d.Value1))
}

// ArrayLengthMismatch reports arrays of unequal length. The overlapping
// prefix is still diffed element-wise; indices beyond the shorter side are
// covered by this record alone.
type ArrayLengthMismatch struct {
	Len1 int `json:"length1"`
	Len2 int `json:"length2"`
}

func (ArrayLengthMismatch) Kind() string { return KindArrayLengthMismatch }

func (d ArrayLengthMismatch) Describe() string {
	return fmt.Sprintf("array length mismatch: %d vs %d", d.Len1, d.Len2)
}

// ValueMismatch reports unequal scalars of the same kind.
type ValueMismatch struct {
	Value1 schema.Value `json:"value1"`
	Value2 schema.Value `json:"value2"`
}

func (ValueMismatch) Kind() string { return KindValueMismatch }

func (d ValueMismatch) Describe() string {
	return fmt.Sprintf("value mismatch: %s vs %s", renderValue(d.Value1), renderValue(d.Value2))
}

// renderValue renders a document fragment for human-readable output,
// falling back to the kind name if canonical marshaling fails.
func renderValue(v schema.Value) string {
	data, err := schema.MarshalCanonical(v)
	if err != nil {
		return schema.KindOf(v)
	}
	return string(data)
}

// RootPath is the path of the document root in difference records.
const RootPath = "root"

// Diff walks two normalized documents in lock-step and returns every
// structural difference keyed by path. An empty map means the documents are
// structurally equal.
//
// Paths use dotted object keys and bracketed array indices rooted at "root",
// e.g. root.properties[2].dataType. Keys are visited in ascending
// lexicographic order and indices ascending, so two runs over identical
// inputs produce identical records.
func Diff(a, b schema.Value, path string) map[string]Difference {
	diffs := make(map[string]Difference)
	diffInto(diffs, a, b, path)
	return diffs
}

func diffInto(diffs map[string]Difference, a, b schema.Value, path string) {
	kindA, kindB := schema.KindOf(a), schema.KindOf(b)
	if kindA != kindB {
		diffs[path] = TypeMismatch{Type1: kindA, Type2: kindB}
		return
	}

	switch av := a.(type) {
	case schema.Object:
		bv := b.(schema.Object)
		for _, key := range unionKeys(av, bv) {
			childPath := path + "." + key
			aChild, inA := av[key]
			bChild, inB := bv[key]
			switch {
			case inA && !inB:
				diffs[childPath] = MissingInSecond{Value1: aChild}
			case !inA && inB:
				diffs[childPath] = MissingInFirst{Value2: bChild}
			default:
				diffInto(diffs, aChild, bChild, childPath)
			}
		}

	case schema.Array:
		bv := b.(schema.Array)
		if len(av) != len(bv) {
			diffs[path] = ArrayLengthMismatch{Len1: len(av), Len2: len(bv)}
		}
		overlap := len(av)
		if len(bv) < overlap {
			overlap = len(bv)
		}
		for i := 0; i < overlap; i++ {
			diffInto(diffs, av[i], bv[i], fmt.Sprintf("%s[%d]", path, i))
		}

	default:
		// Scalars, null included. Exact equality, no epsilon for numbers.
		if !schema.Equal(a, b) {
			diffs[path] = ValueMismatch{Value1: a, Value2: b}
		}
	}
}

// unionKeys returns the sorted union of both objects' keys.
func unionKeys(a, b schema.Object) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	union := make(schema.Object, len(seen))
	for k := range seen {
		union[k] = schema.Null{}
	}
	return union.SortedKeys()
}

// DifferenceRecord is the serialized form of a difference record: the kind
// tag plus that variant's payload fields. Document fragments are carried as
// plain Go values so records round-trip through JSON storage.
type DifferenceRecord struct {
	Kind    string `json:"kind"`
	Type1   string `json:"type1,omitempty"`
	Type2   string `json:"type2,omitempty"`
	Value1  any    `json:"value1,omitempty"`
	Value2  any    `json:"value2,omitempty"`
	Length1 *int   `json:"length1,omitempty"`
	Length2 *int   `json:"length2,omitempty"`
}

// MarshalDifference serializes a difference record with its kind tag, for
// reports and stored run history.
func MarshalDifference(d Difference) DifferenceRecord {
	out := DifferenceRecord{Kind: d.Kind()}
	switch v := d.(type) {
	case TypeMismatch:
		out.Type1, out.Type2 = v.Type1, v.Type2
	case MissingInFirst:
		out.Value2 = schema.ToGo(v.Value2)
	case MissingInSecond:
		out.Value1 = schema.ToGo(v.Value1)
	case ArrayLengthMismatch:
		l1, l2 := v.Len1, v.Len2
		out.Length1, out.Length2 = &l1, &l2
	case ValueMismatch:
		out.Value1, out.Value2 = schema.ToGo(v.Value1), schema.ToGo(v.Value2)
	}
	return out
}

// MarshalDifferences serializes a full diff result keyed by path.
func MarshalDifferences(diffs map[string]Difference) map[string]DifferenceRecord {
	out := make(map[string]DifferenceRecord, len(diffs))
	for path, d := range diffs {
		out[path] = MarshalDifference(d)
	}
	return out
}
