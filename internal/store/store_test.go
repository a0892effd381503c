package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformix/schemacheck/internal/compare"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, st.Close())
}

func TestWriteAndListComparison(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	row := ComparisonRow{
		RunID:               "run-1",
		Scenario:            "article-basic",
		Client:              "python",
		SchemaName:          "article-basic",
		Match:               false,
		BaselineFingerprint: "aaa",
		ExportFingerprint:   "bbb",
		Differences: map[string]compare.DifferenceRecord{
			"root.name": {Kind: compare.KindValueMismatch, Value1: "Article", Value2: "Articles"},
		},
		CreatedUnix: 1700000000,
	}
	require.NoError(t, st.WriteComparison(ctx, row))

	rows, err := st.ListComparisons(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "python", got.Client)
	assert.False(t, got.Match)
	assert.Equal(t, "aaa", got.BaselineFingerprint)
	assert.Equal(t, int64(1700000000), got.CreatedUnix)

	require.Contains(t, got.Differences, "root.name")
	diff := got.Differences["root.name"]
	assert.Equal(t, compare.KindValueMismatch, diff.Kind)
	assert.Equal(t, "Article", diff.Value1)
	assert.Equal(t, "Articles", diff.Value2)
}

func TestWriteComparisonDefaults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	// Nil differences and zero timestamp are filled in on write.
	require.NoError(t, st.WriteComparison(ctx, ComparisonRow{
		RunID:      "run-1",
		Scenario:   "s",
		Client:     "go",
		SchemaName: "s",
		Match:      true,
	}))

	rows, err := st.ListComparisons(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].Differences)
	assert.Empty(t, rows[0].Differences)
	assert.NotZero(t, rows[0].CreatedUnix)
}

func TestListComparisonsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	seed := []ComparisonRow{
		{RunID: "run-1", Scenario: "article", Client: "python", SchemaName: "article", Match: true},
		{RunID: "run-1", Scenario: "article", Client: "go", SchemaName: "article", Match: false},
		{RunID: "run-2", Scenario: "product", Client: "python", SchemaName: "product", Match: true},
	}
	for _, row := range seed {
		require.NoError(t, st.WriteComparison(ctx, row))
	}

	t.Run("by run", func(t *testing.T) {
		rows, err := st.ListComparisons(ctx, Filter{RunID: "run-1"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("by client", func(t *testing.T) {
		rows, err := st.ListComparisons(ctx, Filter{Client: "python"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("by schema", func(t *testing.T) {
		rows, err := st.ListComparisons(ctx, Filter{SchemaName: "product"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "run-2", rows[0].RunID)
	})

	t.Run("combined", func(t *testing.T) {
		rows, err := st.ListComparisons(ctx, Filter{RunID: "run-1", Client: "go"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.False(t, rows[0].Match)
	})

	t.Run("no match", func(t *testing.T) {
		rows, err := st.ListComparisons(ctx, Filter{Client: "rust"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestListComparisonsOrderAndLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, client := range []string{"first", "second", "third"} {
		require.NoError(t, st.WriteComparison(ctx, ComparisonRow{
			RunID: "run-1", Scenario: "s", Client: client, SchemaName: "s", Match: true,
		}))
	}

	rows, err := st.ListComparisons(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest insertion first.
	assert.Equal(t, "third", rows[0].Client)
	assert.Equal(t, "second", rows[1].Client)
}
