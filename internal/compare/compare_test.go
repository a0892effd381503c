package compare

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformix/schemacheck/internal/testutil"
)

func TestCompareReflexive(t *testing.T) {
	doc := testutil.Doc(t, `{
		"name": "Article",
		"properties": [{"name": "title", "dataType": ["text"]}],
		"replicationConfig": {"factor": 1}
	}`)

	result := New().Compare(doc, doc, "self")

	assert.True(t, result.Match)
	assert.Empty(t, result.Differences)
}

func TestCompareTimestampInsensitive(t *testing.T) {
	baseline := testutil.Doc(t, `{
		"name": "Article",
		"creationTimeUnix": 1700000000000
	}`)
	exported := testutil.Doc(t, `{
		"name": "Article",
		"creationTimeUnix": 1799999999999,
		"lastUpdateTimeUnix": 1799999999999
	}`)

	result := New().Compare(baseline, exported, "python/article")

	assert.True(t, result.Match)
}

func TestComparePropertyOrderInsensitive(t *testing.T) {
	baseline := testutil.Doc(t, `{
		"name": "Article",
		"properties": [{"name": "title"}, {"name": "body"}]
	}`)
	exported := testutil.Doc(t, `{
		"name": "Article",
		"properties": [{"name": "body"}, {"name": "title"}]
	}`)

	result := New().Compare(baseline, exported, "go/article")

	assert.True(t, result.Match)
}

func TestCompareClassNameAliasing(t *testing.T) {
	baseline := testutil.Doc(t, `{"name":"Article","vectorizer":"none"}`)
	exported := testutil.Doc(t, `{"class":"Article","vectorizer":"none"}`)

	result := New().Compare(baseline, exported, "java/article")

	assert.True(t, result.Match)
}

func TestCompareSurfacesDifferences(t *testing.T) {
	baseline := testutil.Doc(t, `{
		"name": "Article",
		"replicationConfig": {"factor": 1}
	}`)
	exported := testutil.Doc(t, `{
		"name": "Article",
		"replicationConfig": {"factor": 3}
	}`)

	result := New().Compare(baseline, exported, "ts/article")

	assert.False(t, result.Match)
	require.Len(t, result.Differences, 1)
	assert.Contains(t, result.Differences, "root.replicationConfig.factor")
}

func TestCompareMatchIffNoDifferences(t *testing.T) {
	pairs := []struct {
		name     string
		baseline string
		exported string
	}{
		{"equal", `{"a":1}`, `{"a":1}`},
		{"value differs", `{"a":1}`, `{"a":2}`},
		{"key differs", `{"a":1}`, `{"b":1}`},
		{"type differs", `{"a":1}`, `{"a":"1"}`},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Compare(
				testutil.Doc(t, tt.baseline),
				testutil.Doc(t, tt.exported),
				tt.name,
			)
			assert.Equal(t, len(result.Differences) == 0, result.Match)
		})
	}
}

func TestCompareLabelDoesNotAffectVerdict(t *testing.T) {
	baseline := testutil.Doc(t, `{"a":1}`)
	exported := testutil.Doc(t, `{"a":2}`)

	c := New()
	first := c.Compare(baseline, exported, "python/article")
	second := c.Compare(baseline, exported, "completely different label")

	assert.Equal(t, first.Match, second.Match)
	assert.Equal(t, first.Differences, second.Differences)
}

func TestCompareWithIgnoredFields(t *testing.T) {
	baseline := testutil.Doc(t, `{"name":"Article","shardingConfig":{"actualCount":1}}`)
	exported := testutil.Doc(t, `{"name":"Article","shardingConfig":{"actualCount":4}}`)

	strict := New().Compare(baseline, exported, "strict")
	assert.False(t, strict.Match)

	relaxed := New(WithIgnoredFields("shardingConfig")).Compare(baseline, exported, "relaxed")
	assert.True(t, relaxed.Match)
}

func TestCompareWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := New(WithLogger(logger))
	c.Compare(testutil.Doc(t, `{"a":1}`), testutil.Doc(t, `{"a":2}`), "logged/pair")

	assert.Contains(t, buf.String(), "schemas differ")
	assert.Contains(t, buf.String(), "logged/pair")
}
