// Package report writes benchmark results to disk and to the console.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bebsworthy/pmbench/internal/bench"
	"github.com/bebsworthy/pmbench/internal/debug"
)

// DefaultOutputFile is written relative to the working directory
const DefaultOutputFile = "benchmark_results.json"

// Marshal renders results as a JSON array indented with two spaces.
// HTML characters are not escaped and no trailing newline is added.
func Marshal(results []bench.InstallResult) ([]byte, error) {
	if results == nil {
		results = []bench.InstallResult{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON overwrites path with the serialized results
func WriteJSON(path string, results []bench.InstallResult) error {
	data, err := Marshal(results)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// #nosec G306 - results are meant to be shared
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	debug.Log("Wrote %d results (%d bytes) to %s", len(results), len(data), path)
	return nil
}

// ReadJSON loads results previously written by WriteJSON
func ReadJSON(path string) ([]bench.InstallResult, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path provided by caller
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var results []bench.InstallResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return results, nil
}
