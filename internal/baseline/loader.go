package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/conformix/schemacheck/internal/schema"
)

// ConfigFileName is the file name client runners use for every schema
// configuration document, baseline and export alike.
const ConfigFileName = "config.json"

// LoadDocument reads and parses one configuration document.
func LoadDocument(path string) (schema.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := schema.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// FindBaselines maps schema name to baseline config path under schemasDir.
// Directories without a config.json are skipped.
func FindBaselines(schemasDir string) (map[string]string, error) {
	entries, err := os.ReadDir(schemasDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas directory: %w", err)
	}

	baselines := make(map[string]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		configPath := filepath.Join(schemasDir, entry.Name(), ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			baselines[entry.Name()] = configPath
		}
	}
	return baselines, nil
}

// FindExports maps client name to schema name to exported config path under
// resultsDir/exported-schemas. A missing exported-schemas directory yields an
// empty map, not an error, so a partial run still produces a report.
func FindExports(resultsDir string) (map[string]map[string]string, error) {
	exportedDir := filepath.Join(resultsDir, "exported-schemas")

	exports := make(map[string]map[string]string)
	clients, err := os.ReadDir(exportedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return exports, nil
		}
		return nil, fmt.Errorf("failed to read exports directory: %w", err)
	}

	for _, client := range clients {
		if !client.IsDir() {
			continue
		}
		clientDir := filepath.Join(exportedDir, client.Name())
		schemas, err := os.ReadDir(clientDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read client directory %s: %w", clientDir, err)
		}

		exports[client.Name()] = make(map[string]string)
		for _, sc := range schemas {
			if !sc.IsDir() {
				continue
			}
			configPath := filepath.Join(clientDir, sc.Name(), ConfigFileName)
			if _, err := os.Stat(configPath); err == nil {
				exports[client.Name()][sc.Name()] = configPath
			}
		}
	}
	return exports, nil
}

// SortedKeys returns map keys in ascending order, for deterministic
// iteration over discovered baselines and clients.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
