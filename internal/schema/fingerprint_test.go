package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	a, err := Decode([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"b":2,"a":1}`))
	require.NoError(t, err)

	fpA, err := Fingerprint(a)
	require.NoError(t, err)
	fpB, err := Fingerprint(b)
	require.NoError(t, err)

	assert.Equal(t, fpA, fpB, "key order must not affect the fingerprint")
	assert.Len(t, fpA, 64)
}

func TestFingerprintDistinguishes(t *testing.T) {
	a, err := Decode([]byte(`{"a":1}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"a":2}`))
	require.NoError(t, err)

	fpA, err := Fingerprint(a)
	require.NoError(t, err)
	fpB, err := Fingerprint(b)
	require.NoError(t, err)

	assert.NotEqual(t, fpA, fpB)
}

func TestFingerprintLiteralSensitive(t *testing.T) {
	// Fingerprints hash the canonical rendering, which preserves number
	// literals; 1 and 1.0 are Equal but fingerprint differently. Comparison
	// verdicts come from Equal, never from fingerprint comparison.
	a, err := Decode([]byte(`{"n":1}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"n":1.0}`))
	require.NoError(t, err)

	require.True(t, Equal(a, b))

	fpA, err := Fingerprint(a)
	require.NoError(t, err)
	fpB, err := Fingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, fpA, fpB)
}
