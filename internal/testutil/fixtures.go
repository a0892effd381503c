// Package testutil provides shared fixtures for harness and CLI tests:
// in-memory document builders and helpers that lay out baseline/export
// directory trees the way the client runners do.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/conformix/schemacheck/internal/schema"
)

// Doc parses a JSON literal into a document tree, failing the test on error.
// Keeps test tables readable: Doc(t, `{"name":"Article"}`).
func Doc(t *testing.T, src string) schema.Value {
	t.Helper()
	doc, err := schema.Decode([]byte(src))
	if err != nil {
		t.Fatalf("failed to parse fixture document: %v", err)
	}
	return doc
}

// WriteConfig writes a config.json under dir with the given raw content and
// returns its path, creating intermediate directories.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}
	return path
}

// WriteConfigValue marshals any Go value as JSON into dir/config.json.
func WriteConfigValue(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture config: %v", err)
	}
	return WriteConfig(t, dir, string(data))
}

// WriteScenario writes a scenario YAML file and returns its path.
func WriteScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create scenario directory: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	return path
}

// Collection builds a minimal collection config document with the given name
// and property names, in the shape client exports use.
func Collection(name string, propNames ...string) map[string]any {
	props := make([]any, 0, len(propNames))
	for _, p := range propNames {
		props = append(props, map[string]any{
			"name":     p,
			"dataType": []any{"text"},
		})
	}
	return map[string]any{
		"name":       name,
		"properties": props,
	}
}
