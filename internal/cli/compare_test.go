package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformix/schemacheck/internal/testutil"
)

// executeCommand runs the CLI with the given arguments and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCompareCommandMatch(t *testing.T) {
	dir := t.TempDir()
	baselinePath := testutil.WriteConfigValue(t, filepath.Join(dir, "baseline"),
		testutil.Collection("Article", "title", "body"))
	exportPath := testutil.WriteConfig(t, filepath.Join(dir, "export"), `{
		"class": "Article",
		"creationTimeUnix": 1700000000000,
		"properties": [
			{"name": "body", "dataType": ["text"]},
			{"name": "title", "dataType": ["text"]}
		]
	}`)

	out, err := executeCommand(t, "compare", baselinePath, exportPath, "--label", "python/article")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ schemas match: python/article")
}

func TestCompareCommandMismatch(t *testing.T) {
	dir := t.TempDir()
	baselinePath := testutil.WriteConfig(t, filepath.Join(dir, "baseline"), `{"name":"Article","vectorizer":"none"}`)
	exportPath := testutil.WriteConfig(t, filepath.Join(dir, "export"), `{"name":"Articles","vectorizer":"none"}`)

	out, err := executeCommand(t, "compare", baselinePath, exportPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ schemas differ")
	assert.Contains(t, out, "root.name: value mismatch")
}

func TestCompareCommandJSON(t *testing.T) {
	dir := t.TempDir()
	baselinePath := testutil.WriteConfig(t, filepath.Join(dir, "baseline"), `{"name":"Article"}`)
	exportPath := testutil.WriteConfig(t, filepath.Join(dir, "export"), `{"name":"Articles"}`)

	out, err := executeCommand(t, "compare", baselinePath, exportPath, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_MISMATCH", response.Error.Code)
}

func TestCompareCommandIgnoreFlag(t *testing.T) {
	dir := t.TempDir()
	baselinePath := testutil.WriteConfig(t, filepath.Join(dir, "baseline"), `{"name":"Article"}`)
	exportPath := testutil.WriteConfig(t, filepath.Join(dir, "export"), `{"name":"Article","shardingConfig":{"actualCount":2}}`)

	_, err := executeCommand(t, "compare", baselinePath, exportPath)
	require.Error(t, err)

	out, err := executeCommand(t, "compare", baselinePath, exportPath, "--ignore", "shardingConfig")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ schemas match")
}

func TestCompareCommandMissingFile(t *testing.T) {
	dir := t.TempDir()
	baselinePath := testutil.WriteConfig(t, filepath.Join(dir, "baseline"), `{"name":"Article"}`)

	_, err := executeCommand(t, "compare", baselinePath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompareCommandValidate(t *testing.T) {
	dir := t.TempDir()
	cuePath := filepath.Join(dir, "collection.cue")
	require.NoError(t, os.WriteFile(cuePath, []byte("#Collection\n#Collection: {name: string, ...}\n"), 0644))

	baselinePath := testutil.WriteConfig(t, filepath.Join(dir, "baseline"), `{"name":"Article"}`)
	goodExport := testutil.WriteConfig(t, filepath.Join(dir, "good"), `{"name":"Article"}`)
	badExport := testutil.WriteConfig(t, filepath.Join(dir, "bad"), `{"name":42}`)

	out, err := executeCommand(t, "compare", baselinePath, goodExport, "--validate", cuePath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ schemas match")

	_, err = executeCommand(t, "compare", baselinePath, badExport, "--validate", cuePath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed validation")
}

func TestCompareCommandInvalidFormat(t *testing.T) {
	_, err := executeCommand(t, "compare", "a.json", "b.json", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
