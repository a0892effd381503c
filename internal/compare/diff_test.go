package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformix/schemacheck/internal/schema"
	"github.com/conformix/schemacheck/internal/testutil"
)

func TestDiffEqualDocuments(t *testing.T) {
	a := testutil.Doc(t, `{"name":"Article","properties":[{"name":"title"}]}`)
	b := testutil.Doc(t, `{"properties":[{"name":"title"}],"name":"Article"}`)

	diffs := Diff(a, b, RootPath)
	assert.Empty(t, diffs)
}

func TestDiffValueMismatch(t *testing.T) {
	a := testutil.Doc(t, `{"a":1}`)
	b := testutil.Doc(t, `{"a":2}`)

	diffs := Diff(a, b, RootPath)

	require.Len(t, diffs, 1)
	d, ok := diffs["root.a"].(ValueMismatch)
	require.True(t, ok, "expected a value_mismatch at root.a, got %v", diffs)
	assert.Equal(t, schema.Number("1"), d.Value1)
	assert.Equal(t, schema.Number("2"), d.Value2)
}

func TestDiffMissingKeys(t *testing.T) {
	a := testutil.Doc(t, `{"a":1,"b":2}`)
	b := testutil.Doc(t, `{"a":1,"c":3}`)

	diffs := Diff(a, b, RootPath)

	require.Len(t, diffs, 2)

	missing2, ok := diffs["root.b"].(MissingInSecond)
	require.True(t, ok, "expected missing_in_second at root.b, got %v", diffs)
	assert.Equal(t, schema.Number("2"), missing2.Value1)

	missing1, ok := diffs["root.c"].(MissingInFirst)
	require.True(t, ok, "expected missing_in_first at root.c, got %v", diffs)
	assert.Equal(t, schema.Number("3"), missing1.Value2)
}

func TestDiffTypeMismatchStopsRecursion(t *testing.T) {
	a := testutil.Doc(t, `{"a":{"x":1}}`)
	b := testutil.Doc(t, `{"a":[1]}`)

	diffs := Diff(a, b, RootPath)

	require.Len(t, diffs, 1)
	d, ok := diffs["root.a"].(TypeMismatch)
	require.True(t, ok, "expected type_mismatch at root.a, got %v", diffs)
	assert.Equal(t, schema.KindObject, d.Type1)
	assert.Equal(t, schema.KindArray, d.Type2)
}

func TestDiffArrayLengthMismatch(t *testing.T) {
	a := testutil.Doc(t, `{"x":[1,2,3]}`)
	b := testutil.Doc(t, `{"x":[1,2]}`)

	diffs := Diff(a, b, RootPath)

	// One record for the length, none for the index beyond the overlap.
	require.Len(t, diffs, 1)
	d, ok := diffs["root.x"].(ArrayLengthMismatch)
	require.True(t, ok, "expected array_length_mismatch at root.x, got %v", diffs)
	assert.Equal(t, 3, d.Len1)
	assert.Equal(t, 2, d.Len2)
	assert.NotContains(t, diffs, "root.x[2]")
}

func TestDiffArrayOverlapStillDiffed(t *testing.T) {
	a := testutil.Doc(t, `{"x":[1,9,3]}`)
	b := testutil.Doc(t, `{"x":[1,2]}`)

	diffs := Diff(a, b, RootPath)

	require.Len(t, diffs, 2)
	assert.IsType(t, ArrayLengthMismatch{}, diffs["root.x"])

	d, ok := diffs["root.x[1]"].(ValueMismatch)
	require.True(t, ok, "expected value_mismatch at root.x[1], got %v", diffs)
	assert.Equal(t, schema.Number("9"), d.Value1)
	assert.Equal(t, schema.Number("2"), d.Value2)
}

func TestDiffNestedPaths(t *testing.T) {
	a := testutil.Doc(t, `{"properties":[{"name":"title","indexFilterable":true}]}`)
	b := testutil.Doc(t, `{"properties":[{"name":"title","indexFilterable":false}]}`)

	diffs := Diff(a, b, RootPath)

	require.Len(t, diffs, 1)
	assert.Contains(t, diffs, "root.properties[0].indexFilterable")
	assert.Equal(t, KindValueMismatch, diffs["root.properties[0].indexFilterable"].Kind())
}

func TestDiffNullHandling(t *testing.T) {
	t.Run("null equals null", func(t *testing.T) {
		a := testutil.Doc(t, `{"vectorizer":null}`)
		b := testutil.Doc(t, `{"vectorizer":null}`)
		assert.Empty(t, Diff(a, b, RootPath))
	})

	t.Run("null vs value is a type mismatch", func(t *testing.T) {
		a := testutil.Doc(t, `{"vectorizer":null}`)
		b := testutil.Doc(t, `{"vectorizer":"none"}`)

		diffs := Diff(a, b, RootPath)
		require.Len(t, diffs, 1)
		d, ok := diffs["root.vectorizer"].(TypeMismatch)
		require.True(t, ok)
		assert.Equal(t, schema.KindNull, d.Type1)
		assert.Equal(t, schema.KindString, d.Type2)
	})
}

func TestDiffNumericValueEquality(t *testing.T) {
	a := testutil.Doc(t, `{"factor":1}`)
	b := testutil.Doc(t, `{"factor":1.0}`)

	assert.Empty(t, Diff(a, b, RootPath))
}

func TestDiffSymmetricDetection(t *testing.T) {
	a := testutil.Doc(t, `{"a":1,"b":[1,2],"c":{"x":true}}`)
	b := testutil.Doc(t, `{"a":2,"b":[1],"d":"new"}`)

	forward := Diff(a, b, RootPath)
	backward := Diff(b, a, RootPath)

	require.Equal(t, len(forward), len(backward))
	for path, d := range forward {
		rev, ok := backward[path]
		require.True(t, ok, "path %s missing from reverse diff", path)

		switch fd := d.(type) {
		case ValueMismatch:
			rd := rev.(ValueMismatch)
			assert.True(t, schema.Equal(fd.Value1, rd.Value2))
			assert.True(t, schema.Equal(fd.Value2, rd.Value1))
		case MissingInSecond:
			rd := rev.(MissingInFirst)
			assert.True(t, schema.Equal(fd.Value1, rd.Value2))
		case MissingInFirst:
			rd := rev.(MissingInSecond)
			assert.True(t, schema.Equal(fd.Value2, rd.Value1))
		case TypeMismatch:
			rd := rev.(TypeMismatch)
			assert.Equal(t, fd.Type1, rd.Type2)
			assert.Equal(t, fd.Type2, rd.Type1)
		case ArrayLengthMismatch:
			rd := rev.(ArrayLengthMismatch)
			assert.Equal(t, fd.Len1, rd.Len2)
			assert.Equal(t, fd.Len2, rd.Len1)
		}
	}
}

func TestMarshalDifference(t *testing.T) {
	tests := []struct {
		name string
		diff Difference
		want DifferenceRecord
	}{
		{
			"type mismatch",
			TypeMismatch{Type1: "object", Type2: "array"},
			DifferenceRecord{Kind: KindTypeMismatch, Type1: "object", Type2: "array"},
		},
		{
			"value mismatch",
			ValueMismatch{Value1: schema.String("a"), Value2: schema.String("b")},
			DifferenceRecord{Kind: KindValueMismatch, Value1: "a", Value2: "b"},
		},
		{
			"missing in first",
			MissingInFirst{Value2: schema.Bool(true)},
			DifferenceRecord{Kind: KindMissingInFirst, Value2: true},
		},
		{
			"missing in second",
			MissingInSecond{Value1: schema.Bool(false)},
			DifferenceRecord{Kind: KindMissingInSecond, Value1: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarshalDifference(tt.diff))
		})
	}

	t.Run("array length mismatch", func(t *testing.T) {
		rec := MarshalDifference(ArrayLengthMismatch{Len1: 3, Len2: 2})
		assert.Equal(t, KindArrayLengthMismatch, rec.Kind)
		require.NotNil(t, rec.Length1)
		require.NotNil(t, rec.Length2)
		assert.Equal(t, 3, *rec.Length1)
		assert.Equal(t, 2, *rec.Length2)
	})
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "type mismatch: object vs array",
		TypeMismatch{Type1: "object", Type2: "array"}.Describe())
	assert.Equal(t, "array length mismatch: 3 vs 2",
		ArrayLengthMismatch{Len1: 3, Len2: 2}.Describe())
	assert.Equal(t, `value mismatch: 1 vs 2`,
		ValueMismatch{Value1: schema.Number("1"), Value2: schema.Number("2")}.Describe())
	assert.Equal(t, `missing in second: first has {"name":"title"}`,
		MissingInSecond{Value1: schema.Object{"name": schema.String("title")}}.Describe())
}
