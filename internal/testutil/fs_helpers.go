// Package testutil provides test utilities and helpers for nbcommunities tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ManifestFile is the terms manifest written by CreateCommunityDir.
const ManifestFile = "community_terms_manifest.json"

// ManifestEntry is one entry of a terms manifest fixture.
type ManifestEntry struct {
	NamespacePrefix     string `json:"namespace_prefix"`
	NamespaceURL        string `json:"namespace_url"`
	VocabularyName      string `json:"vocabulary_name"`
	Version             string `json:"version"`
	SourceSpreadsheetID string `json:"source_spreadsheet_id"`
}

type communityConfig struct {
	outputFiles []string
	entries     map[string]ManifestEntry
	variables   [][2]string
	withoutFile bool
}

// CommunityOption is a functional option for CreateCommunityDir
type CommunityOption func(*communityConfig)

// WithEntry adds a manifest entry producing outputFile from spreadsheetID
func WithEntry(outputFile, spreadsheetID string) CommunityOption {
	return func(c *communityConfig) {
		c.outputFiles = append(c.outputFiles, outputFile)
		c.entries[outputFile] = ManifestEntry{
			NamespacePrefix:     "ex",
			NamespaceURL:        "https://example.org/vocab/",
			VocabularyName:      "Example vocabulary",
			Version:             "1.0.0",
			SourceSpreadsheetID: spreadsheetID,
		}
	}
}

// WithVariables writes a config.json holding the given prefix/URL pairs
func WithVariables(pairs ...[2]string) CommunityOption {
	return func(c *communityConfig) {
		c.variables = append(c.variables, pairs...)
	}
}

// WithoutManifest skips writing the terms manifest
func WithoutManifest() CommunityOption {
	return func(c *communityConfig) {
		c.withoutFile = true
	}
}

// CreateCommunityDir creates configsDir/name holding a terms manifest and,
// optionally, a config.json. Returns the community directory path.
// Without options the manifest has a single entry, assessment.json from sheet-a.
func CreateCommunityDir(t *testing.T, configsDir, name string, opts ...CommunityOption) string {
	t.Helper()

	cfg := &communityConfig{entries: map[string]ManifestEntry{}}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.outputFiles) == 0 {
		WithEntry("assessment.json", "sheet-a")(cfg)
	}

	dir := filepath.Join(configsDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create community directory: %v", err)
	}

	if !cfg.withoutFile {
		WriteFile(t, filepath.Join(dir, ManifestFile), orderedManifest(t, cfg))
	}

	if len(cfg.variables) > 0 {
		vars := make([]map[string]any, 0, len(cfg.variables))
		for _, p := range cfg.variables {
			vars = append(vars, map[string]any{"namespace_prefix": p[0], "namespace_url": p[1]})
		}
		WriteJSON(t, filepath.Join(dir, "config.json"), vars)
	}

	return dir
}

// orderedManifest renders the manifest with entries in the order they were added.
func orderedManifest(t *testing.T, cfg *communityConfig) string {
	t.Helper()

	out := "{\n"
	for i, file := range cfg.outputFiles {
		key, _ := json.Marshal(file)
		value, err := json.MarshalIndent(cfg.entries[file], "  ", "  ")
		if err != nil {
			t.Fatalf("failed to encode manifest entry: %v", err)
		}
		out += "  " + string(key) + ": " + string(value)
		if i < len(cfg.outputFiles)-1 {
			out += ","
		}
		out += "\n"
	}
	return out + "}\n"
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// WriteJSON marshals v and writes it to path.
func WriteJSON(t *testing.T, path string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	WriteFile(t, path, string(data))
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// ClearAPIKeys clears the Google API key so tests cannot reach the real
// Sheets API by accident.
func ClearAPIKeys(t *testing.T) {
	t.Helper()
	t.Setenv("COMMUNITIES_GOOGLE_API_KEY", "")
}
